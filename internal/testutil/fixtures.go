package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"centavo/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestProfile creates a profile with a unique name.
func CreateTestProfile(t *testing.T, db *gorm.DB) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		Name: fmt.Sprintf("Profile %d", nextID()),
		Icon: "person",
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestCategory creates a category of the given kind.
func CreateTestCategory(t *testing.T, db *gorm.DB, profileID string, kind models.CategoryKind) *models.Category {
	t.Helper()

	category := &models.Category{
		ProfileID: profileID,
		Name:      fmt.Sprintf("Category %d", nextID()),
		Kind:      kind,
		Icon:      "tag",
		Color:     "#00AA00",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestEntry creates a plain (non-installment) ledger entry.
func CreateTestEntry(t *testing.T, db *gorm.DB, profileID, categoryID string, kind models.EntryKind, amount int64, date time.Time) *models.LedgerEntry {
	t.Helper()

	entry := &models.LedgerEntry{
		ProfileID:    profileID,
		Description:  fmt.Sprintf("Entry %d", nextID()),
		Amount:       amount,
		Kind:         kind,
		CategoryID:   categoryID,
		Date:         date,
		Installments: 1,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}
	return entry
}

// CreateTestObligation creates an active recurring obligation with the
// given frequency and selected months.
func CreateTestObligation(t *testing.T, db *gorm.DB, profileID string, kind models.ObligationKind, amount int64, frequency models.Frequency, months ...int) *models.RecurringObligation {
	t.Helper()

	obligation := &models.RecurringObligation{
		ProfileID: profileID,
		Name:      fmt.Sprintf("Obligation %d", nextID()),
		Amount:    amount,
		Kind:      kind,
		Frequency: frequency,
		Status:    models.ObligationStatusActive,
	}
	if err := db.Create(obligation).Error; err != nil {
		t.Fatalf("failed to create test obligation: %v", err)
	}
	for _, m := range months {
		row := models.ObligationMonth{ObligationID: obligation.ID, Month: m}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("failed to create test obligation month: %v", err)
		}
		obligation.Months = append(obligation.Months, row)
	}
	return obligation
}
