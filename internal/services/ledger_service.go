package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
	"centavo/internal/uuid"
	"centavo/internal/validator"
)

// ledgerService handles ledger writes, including installment expansion,
// and group-aware deletes.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// Record writes a purchase or income to the ledger. A purchase with
// Installments = N > 1 expands into N rows sharing one parent id, dated
// one calendar month apart with end-of-month clamping, and returns the
// first row as the representative result.
//
// The N-row sequence is deliberately not wrapped in a transaction: every
// statement commits on its own, matching the store's single-connection
// write model. A crash mid-sequence leaves a partial group, which readers
// tolerate.
func (s *ledgerService) Record(input RecordInput) (*models.LedgerEntry, error) {
	if err := validator.Struct(input); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	n := input.Installments
	if n <= 1 {
		entry := s.buildEntry(input, input.Description, input.Amount, date)
		if err := s.db.Create(entry).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStore, err)
		}
		return entry, nil
	}

	// Per-installment amount: explicit when provided, otherwise the total
	// split evenly with the remainder folded into the first row so the
	// group always sums back to the purchase amount.
	per := input.Amount / int64(n)
	remainder := input.Amount - per*int64(n)
	if input.InstallmentAmount != nil {
		per = *input.InstallmentAmount
		remainder = 0
	}

	parentID := uuid.New()
	var first *models.LedgerEntry
	for i := 0; i < n; i++ {
		amount := per
		if i == 0 {
			amount += remainder
		}
		description := fmt.Sprintf("%s (%d/%d)", input.Description, i+1, n)

		entry := s.buildEntry(input, description, amount, addMonthsClamped(date, i))
		if i == 0 {
			entry.ID = parentID
		} else {
			entry.ID = uuid.Derive(parentID, i)
		}
		groupID := parentID
		entry.ParentEntryID = &groupID
		entry.Installments = n

		if err := s.db.Create(entry).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStore, err)
		}
		if i == 0 {
			first = entry
		}
	}
	return first, nil
}

// buildEntry assembles a single ledger row from the input.
func (s *ledgerService) buildEntry(input RecordInput, description string, amount int64, date time.Time) *models.LedgerEntry {
	return &models.LedgerEntry{
		ProfileID:         input.ProfileID,
		Description:       description,
		Amount:            amount,
		Kind:              input.Kind,
		CategoryID:        input.CategoryID,
		Date:              date,
		PaymentMethod:     input.PaymentMethod,
		CardID:            input.CardID,
		Installments:      1,
		InstallmentAmount: input.InstallmentAmount,
		TotalAmount:       input.TotalAmount,
		PrincipalAmount:   input.PrincipalAmount,
		InterestAmount:    input.InterestAmount,
		BankLoanID:        input.BankLoanID,
	}
}

// GetEntryByID retrieves one ledger entry of a profile.
func (s *ledgerService) GetEntryByID(profileID, entryID string) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	if err := s.db.First(&entry, "id = ? AND profile_id = ?", entryID, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return &entry, nil
}

// GetMonthEntries retrieves a profile's entries dated within a calendar
// month, oldest first.
func (s *ledgerService) GetMonthEntries(profileID string, year, month int) ([]models.LedgerEntry, error) {
	start, end := monthRange(year, month)
	var entries []models.LedgerEntry
	if err := s.db.
		Where("profile_id = ? AND date >= ? AND date < ?", profileID, start, end).
		Order("date").Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return entries, nil
}

// GetInstallmentGroup returns every row of an installment group, oldest
// first. A partially written group (crash mid-expansion) returns whatever
// rows exist.
func (s *ledgerService) GetInstallmentGroup(profileID, parentID string) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := s.db.
		Where("profile_id = ? AND (id = ? OR parent_entry_id = ?)", profileID, parentID, parentID).
		Order("date").Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return entries, nil
}

// Delete removes a ledger entry. When the entry belongs to an installment
// group, the whole group is removed no matter which member was targeted;
// callers must surface that to the user before deleting, it is not a
// silent side effect.
func (s *ledgerService) Delete(profileID, entryID string) error {
	entry, err := s.GetEntryByID(profileID, entryID)
	if err != nil {
		return err
	}

	groupID := ""
	switch {
	case entry.ParentEntryID != nil:
		groupID = *entry.ParentEntryID
	case entry.Installments > 1:
		// A parent row without a back-pointer, written before parent ids
		// were stamped on every member.
		groupID = entry.ID
	}

	if groupID == "" {
		if err := s.db.Delete(&models.LedgerEntry{}, "id = ? AND profile_id = ?", entryID, profileID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStore, err)
		}
		return nil
	}

	if err := s.db.
		Where("profile_id = ? AND (id = ? OR parent_entry_id = ?)", profileID, groupID, groupID).
		Delete(&models.LedgerEntry{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}
