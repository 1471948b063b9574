package models

// Card represents a credit card used as a payment attribute on ledger
// entries. Limit is in cents.
type Card struct {
	Base
	ProfileID  string `gorm:"type:uuid;index" json:"profile_id"`
	Name       string `gorm:"not null" json:"name"`
	Brand      string `json:"brand"`
	ClosingDay int    `json:"closing_day"`
	DueDay     int    `json:"due_day"`
	Limit      int64  `gorm:"type:bigint" json:"limit"`
}
