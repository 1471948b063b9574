package models

// CategoryKind represents the kind of category
type CategoryKind string

const (
	CategoryKindIncome    CategoryKind = "income"
	CategoryKindExpense   CategoryKind = "expense"
	CategoryKindFixedBill CategoryKind = "fixed_bill"
)

// Category represents a ledger or shopping category. Uniqueness by
// (name, profile) is a convention enforced by the service layer, not the
// store; the same goes for referential integrity on delete.
type Category struct {
	Base
	ProfileID string       `gorm:"type:uuid;index" json:"profile_id"`
	Name      string       `gorm:"not null" json:"name"`
	Kind      CategoryKind `gorm:"not null" json:"kind"`
	Icon      string       `json:"icon"`
	Color     string       `json:"color"`
}
