package models

import "time"

// EntryKind represents the direction of a ledger entry
type EntryKind string

const (
	EntryKindIncome  EntryKind = "income"
	EntryKindExpense EntryKind = "expense"
)

// Payment methods accepted on a ledger entry.
const (
	PaymentMethodCash   = "cash"
	PaymentMethodDebit  = "debit"
	PaymentMethodCredit = "credit"
	PaymentMethodPix    = "pix"
)

// LedgerEntry represents one dated income or expense, possibly one
// installment of a larger purchase. All amounts are in cents.
//
// Installment group invariant: when Installments > 1, exactly Installments
// rows share one ParentEntryID; the first row's ID equals that parent id,
// the rest derive from it. All rows in a group carry the same Installments
// count, contiguous monthly dates and identical loan decomposition fields.
// A crash mid-write can leave fewer than Installments rows; readers
// tolerate partial groups.
type LedgerEntry struct {
	Base
	ProfileID   string    `gorm:"type:uuid;index" json:"profile_id"`
	Description string    `gorm:"not null" json:"description"`
	Amount      int64     `gorm:"type:bigint;not null" json:"amount"`
	Kind        EntryKind `gorm:"not null" json:"kind"`
	CategoryID  string    `gorm:"type:uuid;index" json:"category_id"`
	Date        time.Time `gorm:"not null;index" json:"date"`

	// Payment attributes
	PaymentMethod string  `json:"payment_method,omitempty"`
	CardID        *string `gorm:"type:uuid" json:"card_id,omitempty"`
	Installments  int     `gorm:"default:1" json:"installments"`
	ParentEntryID *string `gorm:"index" json:"parent_entry_id,omitempty"`

	// Loan decomposition, present on entries recorded from a bank loan
	TotalAmount       *int64  `gorm:"type:bigint" json:"total_amount,omitempty"`
	PrincipalAmount   *int64  `gorm:"type:bigint" json:"principal_amount,omitempty"`
	InterestAmount    *int64  `gorm:"type:bigint" json:"interest_amount,omitempty"`
	InstallmentAmount *int64  `gorm:"type:bigint" json:"installment_amount,omitempty"`
	BankLoanID        *string `gorm:"type:uuid" json:"bank_loan_id,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
