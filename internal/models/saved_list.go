package models

// SavedShoppingList is a frozen snapshot of a month's cart. It is deleted
// as a unit with its items, and deleting its last item deletes the list.
type SavedShoppingList struct {
	Base
	ProfileID       string `gorm:"type:uuid;index" json:"profile_id"`
	ShoppingMonthID string `gorm:"type:uuid" json:"shopping_month_id"`
	Name            string `gorm:"not null" json:"name"`

	Items []SavedShoppingItem `gorm:"foreignKey:ListID" json:"items,omitempty"`
}

// SavedShoppingItem is one frozen cart line.
type SavedShoppingItem struct {
	Base
	ListID     string  `gorm:"type:uuid;not null;index" json:"list_id"`
	ProductID  *string `gorm:"type:uuid" json:"product_id,omitempty"`
	Name       string  `json:"name,omitempty"`
	Amount     int64   `gorm:"type:bigint;not null" json:"amount"`
	Quantity   int     `gorm:"default:1" json:"quantity"`
	CategoryID *string `gorm:"type:uuid" json:"category_id,omitempty"`
}
