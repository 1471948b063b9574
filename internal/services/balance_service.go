package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
)

// balanceService computes the read-side aggregates consumed by
// presentation. Pure folds: no mutation, empty result means zero.
type balanceService struct {
	db *gorm.DB
}

// NewBalanceService creates a new BalanceServicer.
func NewBalanceService(db *gorm.DB) BalanceServicer {
	return &balanceService{db: db}
}

// MonthlyBalance returns income minus expense for a calendar month,
// with the month's applicable recurring obligations folded in: recurring
// incomes add, fixed bills subtract.
func (s *balanceService) MonthlyBalance(profileID string, year, month int) (int64, error) {
	start, end := monthRange(year, month)

	income, err := s.sumEntries(profileID, models.EntryKindIncome, &start, &end)
	if err != nil {
		return 0, err
	}
	expense, err := s.sumEntries(profileID, models.EntryKindExpense, &start, &end)
	if err != nil {
		return 0, err
	}

	obligations, err := s.activeObligations(profileID)
	if err != nil {
		return 0, err
	}
	for i := range obligations {
		if !obligations[i].AppliesTo(month) {
			continue
		}
		if obligations[i].Kind == models.ObligationKindRecurringIncome {
			income += obligations[i].Amount
		} else {
			expense += obligations[i].Amount
		}
	}

	return income - expense, nil
}

// TotalBalance returns the all-time income minus expense with every
// active recurring obligation folded in once.
func (s *balanceService) TotalBalance(profileID string) (int64, error) {
	income, err := s.sumEntries(profileID, models.EntryKindIncome, nil, nil)
	if err != nil {
		return 0, err
	}
	expense, err := s.sumEntries(profileID, models.EntryKindExpense, nil, nil)
	if err != nil {
		return 0, err
	}

	obligations, err := s.activeObligations(profileID)
	if err != nil {
		return 0, err
	}
	for i := range obligations {
		if obligations[i].Kind == models.ObligationKindRecurringIncome {
			income += obligations[i].Amount
		} else {
			expense += obligations[i].Amount
		}
	}

	return income - expense, nil
}

// CategoryBreakdown returns per-category totals for a calendar month.
func (s *balanceService) CategoryBreakdown(profileID string, year, month int) ([]CategoryTotal, error) {
	start, end := monthRange(year, month)

	var totals []CategoryTotal
	err := s.db.Model(&models.LedgerEntry{}).
		Select("category_id, kind, COALESCE(SUM(amount), 0) AS total").
		Where("profile_id = ? AND date >= ? AND date < ?", profileID, start, end).
		Group("category_id").Group("kind").
		Order("total DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return totals, nil
}

// sumEntries folds entry amounts of one kind, optionally restricted to a
// date interval.
func (s *balanceService) sumEntries(profileID string, kind models.EntryKind, start, end *time.Time) (int64, error) {
	query := s.db.Model(&models.LedgerEntry{}).
		Where("profile_id = ? AND kind = ?", profileID, kind)
	if start != nil && end != nil {
		query = query.Where("date >= ? AND date < ?", *start, *end)
	}

	var total int64
	if err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return total, nil
}

// activeObligations loads a profile's active obligations with their
// selected months.
func (s *balanceService) activeObligations(profileID string) ([]models.RecurringObligation, error) {
	var obligations []models.RecurringObligation
	err := s.db.Preload("Months").
		Where("profile_id = ? AND status = ?", profileID, models.ObligationStatusActive).
		Find(&obligations).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return obligations, nil
}
