package services

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
	"centavo/internal/validator"
)

// recurringService handles fixed bills and recurring incomes.
type recurringService struct {
	db *gorm.DB
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB) RecurringServicer {
	return &recurringService{db: db}
}

// Create creates a recurring obligation. A specific_months frequency with
// no selected months is rejected before any write; no partial state is
// created.
func (s *recurringService) Create(input RecurringInput) (*models.RecurringObligation, error) {
	if err := validator.Struct(input); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	months, err := normalizeMonths(input)
	if err != nil {
		return nil, err
	}

	obligation := &models.RecurringObligation{
		ProfileID:  input.ProfileID,
		Name:       input.Name,
		Amount:     input.Amount,
		CategoryID: input.CategoryID,
		Kind:       input.Kind,
		Frequency:  input.Frequency,
		Status:     models.ObligationStatusActive,
	}
	if err := s.db.Create(obligation).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	if err := s.replaceMonths(obligation.ID, months); err != nil {
		return nil, err
	}

	obligation.Months = monthRows(obligation.ID, months)
	return obligation, nil
}

// GetByID retrieves an obligation with its selected months.
func (s *recurringService) GetByID(profileID, obligationID string) (*models.RecurringObligation, error) {
	var obligation models.RecurringObligation
	err := s.db.Preload("Months").
		First(&obligation, "id = ? AND profile_id = ?", obligationID, profileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrObligationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return &obligation, nil
}

// List retrieves all obligations of a profile with their selected months.
func (s *recurringService) List(profileID string) ([]models.RecurringObligation, error) {
	var obligations []models.RecurringObligation
	err := s.db.Preload("Months").
		Where("profile_id = ?", profileID).
		Order("name").Find(&obligations).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return obligations, nil
}

// ListApplying retrieves the active obligations that fall due in the
// given calendar month.
func (s *recurringService) ListApplying(profileID string, month int) ([]models.RecurringObligation, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	var obligations []models.RecurringObligation
	err := s.db.Preload("Months").
		Where("profile_id = ? AND status = ?", profileID, models.ObligationStatusActive).
		Find(&obligations).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	applying := obligations[:0]
	for i := range obligations {
		if obligations[i].AppliesTo(month) {
			applying = append(applying, obligations[i])
		}
	}
	return applying, nil
}

// Update replaces an obligation's fields and selected-months set.
func (s *recurringService) Update(profileID, obligationID string, input RecurringInput) (*models.RecurringObligation, error) {
	obligation, err := s.GetByID(profileID, obligationID)
	if err != nil {
		return nil, err
	}
	if err := validator.Struct(input); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	months, err := normalizeMonths(input)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":        input.Name,
		"amount":      input.Amount,
		"category_id": input.CategoryID,
		"kind":        input.Kind,
		"frequency":   input.Frequency,
	}
	if err := s.db.Model(obligation).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	if err := s.replaceMonths(obligation.ID, months); err != nil {
		return nil, err
	}

	obligation.Months = monthRows(obligation.ID, months)
	return obligation, nil
}

// SetStatus activates or deactivates an obligation.
func (s *recurringService) SetStatus(profileID, obligationID string, status models.ObligationStatus) error {
	if status != models.ObligationStatusActive && status != models.ObligationStatusInactive {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown obligation status")
	}
	obligation, err := s.GetByID(profileID, obligationID)
	if err != nil {
		return err
	}
	if err := s.db.Model(obligation).Update("status", status).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

// Delete removes an obligation and its selected months.
func (s *recurringService) Delete(profileID, obligationID string) error {
	if _, err := s.GetByID(profileID, obligationID); err != nil {
		return err
	}
	if err := s.db.Delete(&models.ObligationMonth{}, "obligation_id = ?", obligationID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	if err := s.db.Delete(&models.RecurringObligation{}, "id = ?", obligationID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

// normalizeMonths validates the frequency/months combination and returns
// the deduplicated, sorted selected-months set.
func normalizeMonths(input RecurringInput) ([]int, error) {
	if input.Frequency == models.FrequencyAllMonths {
		return nil, nil
	}
	if len(input.Months) == 0 {
		return nil, apperrors.ErrMonthsRequired
	}

	seen := make(map[int]bool, len(input.Months))
	months := make([]int, 0, len(input.Months))
	for _, m := range input.Months {
		if m < 1 || m > 12 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be between 1 and 12")
		}
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Ints(months)
	return months, nil
}

// replaceMonths swaps the stored selected-months set for an obligation.
func (s *recurringService) replaceMonths(obligationID string, months []int) error {
	if err := s.db.Delete(&models.ObligationMonth{}, "obligation_id = ?", obligationID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	for _, m := range months {
		row := models.ObligationMonth{ObligationID: obligationID, Month: m}
		if err := s.db.Create(&row).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStore, err)
		}
	}
	return nil
}

func monthRows(obligationID string, months []int) []models.ObligationMonth {
	rows := make([]models.ObligationMonth, 0, len(months))
	for _, m := range months {
		rows = append(rows, models.ObligationMonth{ObligationID: obligationID, Month: m})
	}
	return rows
}
