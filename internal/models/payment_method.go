package models

// PaymentMethod represents a payment_methods row.
type PaymentMethod struct {
	PaymentMethodID string `db:"payment_method_id"`
	UserID          string `db:"user_id"`
	Name            string `db:"name"`
	CurrencyCode    string `db:"currency_code"`
	IsArchived      bool   `db:"is_archived"`
	AuditFields
}
