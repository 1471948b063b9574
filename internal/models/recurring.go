package models

// ObligationKind distinguishes fixed bills from recurring incomes
type ObligationKind string

const (
	ObligationKindFixedBill       ObligationKind = "fixed_bill"
	ObligationKindRecurringIncome ObligationKind = "recurring_income"
)

// Frequency represents the recurrence rule of an obligation
type Frequency string

const (
	FrequencyAllMonths      Frequency = "all_months"
	FrequencySpecificMonths Frequency = "specific_months"
)

// ObligationStatus represents whether an obligation is currently in effect
type ObligationStatus string

const (
	ObligationStatusActive   ObligationStatus = "active"
	ObligationStatusInactive ObligationStatus = "inactive"
)

// RecurringObligation represents a fixed bill or recurring income folded
// into monthly balances. Amount is in cents. Selected months live in the
// recurring_obligation_months association table rather than an encoded
// text column.
type RecurringObligation struct {
	Base
	ProfileID  string           `gorm:"type:uuid;index" json:"profile_id"`
	Name       string           `gorm:"not null" json:"name"`
	Amount     int64            `gorm:"type:bigint;not null" json:"amount"`
	CategoryID string           `gorm:"type:uuid" json:"category_id"`
	Kind       ObligationKind   `gorm:"not null" json:"kind"`
	Frequency  Frequency        `gorm:"not null" json:"frequency"`
	Status     ObligationStatus `gorm:"not null;default:active" json:"status"`

	Months []ObligationMonth `gorm:"foreignKey:ObligationID" json:"months,omitempty"`
}

// ObligationMonth is one selected calendar month (1-12) of a
// specific_months obligation.
type ObligationMonth struct {
	ObligationID string `gorm:"type:uuid;primaryKey" json:"obligation_id"`
	Month        int    `gorm:"primaryKey" json:"month"`
}

// TableName keeps the association table name aligned with the schema DDL.
func (ObligationMonth) TableName() string { return "recurring_obligation_months" }

// AppliesTo reports whether the obligation falls due in the given calendar
// month (1-12). An all_months obligation always applies. A specific_months
// obligation with no selected months never applies; that shape is a data
// entry error, not a crash.
func (o *RecurringObligation) AppliesTo(month int) bool {
	if o.Frequency == FrequencyAllMonths {
		return true
	}
	for _, m := range o.Months {
		if m.Month == month {
			return true
		}
	}
	return false
}
