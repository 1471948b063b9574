package models

// Profile represents a user profile. All ledger, category and shopping data
// is scoped to exactly one profile; balances are profile-filtered aggregates,
// so cross-profile reads are a correctness bug.
type Profile struct {
	Base
	Name      string `gorm:"not null" json:"name"`
	Icon      string `json:"icon"`
	IsDefault bool   `gorm:"default:false" json:"is_default"`
}
