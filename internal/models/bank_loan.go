package models

import "time"

// LoanStatus represents the lifecycle state of a bank loan
type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "active"
	LoanStatusCompleted LoanStatus = "completed"
	LoanStatusCancelled LoanStatus = "cancelled"
)

// BankLoan represents a financed loan whose installments are expanded into
// ledger entries. Amounts are in cents.
// Invariants: InterestAmount == TotalAmount - PrincipalAmount, and
// InstallmentAmount is TotalAmount split over Installments.
type BankLoan struct {
	Base
	ProfileID         string     `gorm:"type:uuid;index" json:"profile_id"`
	Description       string     `gorm:"not null" json:"description"`
	TotalAmount       int64      `gorm:"type:bigint;not null" json:"total_amount"`
	PrincipalAmount   int64      `gorm:"type:bigint;not null" json:"principal_amount"`
	InterestAmount    int64      `gorm:"type:bigint;not null" json:"interest_amount"`
	InstallmentAmount int64      `gorm:"type:bigint;not null" json:"installment_amount"`
	Installments      int        `gorm:"not null" json:"installments"`
	CategoryID        string     `gorm:"type:uuid" json:"category_id"`
	StartDate         time.Time  `gorm:"not null" json:"start_date"`
	Status            LoanStatus `gorm:"not null;default:active" json:"status"`
}
