package models

// ShoppingMonth is the monthly shopping bucket, created lazily on first
// access. Unique per (year, month, profile); VoucherLimit is in cents.
type ShoppingMonth struct {
	Base
	ProfileID    string `gorm:"type:uuid;index" json:"profile_id"`
	Year         int    `gorm:"not null" json:"year"`
	Month        int    `gorm:"not null" json:"month"`
	VoucherLimit int64  `gorm:"type:bigint;default:0" json:"voucher_limit"`
}

// Product is an append-only catalog entry shared across months.
// Unique per (name, profile); legacy stores enforced name uniqueness
// globally, which the migration engine repairs.
type Product struct {
	Base
	ProfileID  string  `gorm:"type:uuid;index" json:"profile_id"`
	Name       string  `gorm:"not null" json:"name"`
	CategoryID *string `gorm:"type:uuid" json:"category_id,omitempty"`
}

// ShoppingItem is one line of a month's live cart. It references either a
// catalog product or carries a free-text name. Amount is in cents.
type ShoppingItem struct {
	Base
	ProfileID       string  `gorm:"type:uuid;index" json:"profile_id"`
	ShoppingMonthID string  `gorm:"type:uuid;not null;index" json:"shopping_month_id"`
	ProductID       *string `gorm:"type:uuid" json:"product_id,omitempty"`
	Name            string  `json:"name,omitempty"`
	Amount          int64   `gorm:"type:bigint;not null" json:"amount"`
	Quantity        int     `gorm:"default:1" json:"quantity"`
	CategoryID      *string `gorm:"type:uuid" json:"category_id,omitempty"`
	ListItemID      *string `gorm:"type:uuid" json:"list_item_id,omitempty"`
}
