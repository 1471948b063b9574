package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
	"centavo/internal/validator"
)

// bankLoanService handles bank loans. Registering a loan expands it into
// an installment group via the ledger service, so the loan's monthly
// charges are individually addressable ledger rows.
type bankLoanService struct {
	db     *gorm.DB
	ledger LedgerServicer
}

// NewBankLoanService creates a new BankLoanServicer.
func NewBankLoanService(db *gorm.DB, ledger LedgerServicer) BankLoanServicer {
	return &bankLoanService{db: db, ledger: ledger}
}

// Register validates the loan decomposition, creates the loan and records
// its installment expansion in the ledger. Validation failures reject the
// whole call before any write.
func (s *bankLoanService) Register(input LoanInput) (*models.BankLoan, error) {
	if err := validator.Struct(input); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	if input.InterestAmount != input.TotalAmount-input.PrincipalAmount {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"interest amount must equal total minus principal")
	}

	n := int64(input.Installments)
	installment := input.InstallmentAmount
	if installment == 0 {
		installment = input.TotalAmount / n
	} else if diff := installment*n - input.TotalAmount; diff < -(n-1) || diff > n-1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"installment amount does not split the total")
	}

	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = time.Now().UTC()
	}

	loan := &models.BankLoan{
		ProfileID:         input.ProfileID,
		Description:       input.Description,
		TotalAmount:       input.TotalAmount,
		PrincipalAmount:   input.PrincipalAmount,
		InterestAmount:    input.InterestAmount,
		InstallmentAmount: installment,
		Installments:      input.Installments,
		CategoryID:        input.CategoryID,
		StartDate:         startDate,
		Status:            models.LoanStatusActive,
	}
	if err := s.db.Create(loan).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	_, err := s.ledger.Record(RecordInput{
		ProfileID:         input.ProfileID,
		Description:       input.Description,
		Amount:            input.TotalAmount,
		Kind:              models.EntryKindExpense,
		CategoryID:        input.CategoryID,
		Date:              startDate,
		Installments:      input.Installments,
		InstallmentAmount: &installment,
		TotalAmount:       &loan.TotalAmount,
		PrincipalAmount:   &loan.PrincipalAmount,
		InterestAmount:    &loan.InterestAmount,
		BankLoanID:        &loan.ID,
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// GetLoanByID retrieves a loan by ID for a specific profile.
func (s *bankLoanService) GetLoanByID(profileID, loanID string) (*models.BankLoan, error) {
	var loan models.BankLoan
	if err := s.db.First(&loan, "id = ? AND profile_id = ?", loanID, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return &loan, nil
}

// GetLoans retrieves a profile's loans, newest first.
func (s *bankLoanService) GetLoans(profileID string) ([]models.BankLoan, error) {
	var loans []models.BankLoan
	if err := s.db.Where("profile_id = ?", profileID).
		Order("start_date DESC").Find(&loans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return loans, nil
}

// SetStatus moves a loan through its lifecycle.
func (s *bankLoanService) SetStatus(profileID, loanID string, status models.LoanStatus) error {
	if err := validator.Var(string(status), "loan_status"); err != nil {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown loan status")
	}
	loan, err := s.GetLoanByID(profileID, loanID)
	if err != nil {
		return err
	}
	if err := s.db.Model(loan).Update("status", status).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

// Delete removes a loan together with its ledger installment group.
func (s *bankLoanService) Delete(profileID, loanID string) error {
	if _, err := s.GetLoanByID(profileID, loanID); err != nil {
		return err
	}
	if err := s.db.Delete(&models.LedgerEntry{},
		"bank_loan_id = ? AND profile_id = ?", loanID, profileID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	if err := s.db.Delete(&models.BankLoan{}, "id = ?", loanID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}
