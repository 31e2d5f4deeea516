package domain

// PaymentMethod is an account/card/wallet a user pays with. Each method is
// denominated in exactly one currency; the distinct currencies of a user's
// non-archived methods drive the exchange-rate refresh set.
type PaymentMethod struct {
	PaymentMethodID string `json:"paymentMethodID"` // Primary Key (e.g., UUID)
	UserID          string `json:"userID"`
	Name            string `json:"name"`
	CurrencyCode    string `json:"currencyCode"`
	IsArchived      bool   `json:"isArchived"`
	AuditFields
}
