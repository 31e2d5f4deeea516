package domain

import "strings"

// CategoryType indicates whether transactions in a category add to or subtract
// from the balance. Stored lowercase; parsing normalizes case.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// ParseCategoryType normalizes arbitrary-cased input to a CategoryType.
func ParseCategoryType(s string) (CategoryType, bool) {
	switch CategoryType(strings.ToLower(s)) {
	case CategoryIncome:
		return CategoryIncome, true
	case CategoryExpense:
		return CategoryExpense, true
	}
	return "", false
}

// Category represents a user-defined transaction category.
type Category struct {
	CategoryID string       `json:"categoryID"` // Primary Key (e.g., UUID)
	UserID     string       `json:"userID"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	Color      string       `json:"color,omitempty"`
	Icon       string       `json:"icon,omitempty"`
	AuditFields
}
