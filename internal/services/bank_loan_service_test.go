package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"centavo/internal/models"
	"centavo/internal/testutil"
)

func newLoanService(db *gorm.DB) (BankLoanServicer, LedgerServicer) {
	ledger := NewLedgerService(db)
	return NewBankLoanService(db, ledger), ledger
}

func TestRegisterLoan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	profile := testutil.CreateTestProfile(t, db)
	service, ledger := newLoanService(db)

	loan, err := service.Register(LoanInput{
		ProfileID:       profile.ID,
		Description:     "Car loan",
		TotalAmount:     110000,
		PrincipalAmount: 100000,
		InterestAmount:  10000,
		Installments:    10,
		StartDate:       time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
	})
	testutil.AssertNoError(t, err)

	// Installment amount left zero derives from the total.
	if loan.InstallmentAmount != 11000 {
		t.Errorf("expected derived installment 11000, got %d", loan.InstallmentAmount)
	}
	if loan.Status != models.LoanStatusActive {
		t.Errorf("expected new loan active, got %s", loan.Status)
	}

	// Registration expands into ledger rows carrying the decomposition.
	var entries []models.LedgerEntry
	testutil.AssertNoError(t,
		db.Where("bank_loan_id = ?", loan.ID).Order("date").Find(&entries).Error)
	if len(entries) != 10 {
		t.Fatalf("expected 10 ledger rows, got %d", len(entries))
	}
	for i, entry := range entries {
		if entry.Amount != 11000 {
			t.Errorf("row %d amount %d, want 11000", i, entry.Amount)
		}
		if entry.Kind != models.EntryKindExpense {
			t.Errorf("row %d kind %s, want expense", i, entry.Kind)
		}
		if entry.PrincipalAmount == nil || *entry.PrincipalAmount != 100000 {
			t.Errorf("row %d missing principal decomposition", i)
		}
		if entry.InterestAmount == nil || *entry.InterestAmount != 10000 {
			t.Errorf("row %d missing interest decomposition", i)
		}
	}
	if entries[0].Date.Format("2006-01-02") != "2025-02-05" {
		t.Errorf("expected first charge on the start date, got %s", entries[0].Date)
	}

	// The expanded group is reachable via the ledger service too.
	if entries[0].ParentEntryID == nil {
		t.Fatal("expected a group parent on the loan entries")
	}
	group, err := ledger.GetInstallmentGroup(profile.ID, *entries[0].ParentEntryID)
	testutil.AssertNoError(t, err)
	if len(group) != 10 {
		t.Errorf("expected the full group via the ledger, got %d rows", len(group))
	}
}

func TestRegisterLoanValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	profile := testutil.CreateTestProfile(t, db)
	service, _ := newLoanService(db)

	t.Run("interest_must_equal_total_minus_principal", func(t *testing.T) {
		_, err := service.Register(LoanInput{
			ProfileID:       profile.ID,
			Description:     "Bad math",
			TotalAmount:     110000,
			PrincipalAmount: 100000,
			InterestAmount:  5000,
			Installments:    10,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("installment_must_split_total", func(t *testing.T) {
		_, err := service.Register(LoanInput{
			ProfileID:         profile.ID,
			Description:       "Bad split",
			TotalAmount:       110000,
			PrincipalAmount:   100000,
			InterestAmount:    10000,
			InstallmentAmount: 20000,
			Installments:      10,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("requires_at_least_one_installment", func(t *testing.T) {
		_, err := service.Register(LoanInput{
			ProfileID:       profile.ID,
			Description:     "No installments",
			TotalAmount:     110000,
			PrincipalAmount: 100000,
			InterestAmount:  10000,
			Installments:    0,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	// Rejected registrations leave no loan and no ledger rows.
	var loans, entries int64
	db.Model(&models.BankLoan{}).Count(&loans)
	db.Model(&models.LedgerEntry{}).Count(&entries)
	if loans != 0 || entries != 0 {
		t.Errorf("expected no rows after rejected inputs, got %d loans and %d entries", loans, entries)
	}
}

func TestLoanStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	profile := testutil.CreateTestProfile(t, db)
	service, _ := newLoanService(db)

	loan, err := service.Register(LoanInput{
		ProfileID:       profile.ID,
		Description:     "Car loan",
		TotalAmount:     110000,
		PrincipalAmount: 100000,
		InterestAmount:  10000,
		Installments:    10,
	})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t,
		service.SetStatus(profile.ID, loan.ID, models.LoanStatusCompleted))

	reloaded, err := service.GetLoanByID(profile.ID, loan.ID)
	testutil.AssertNoError(t, err)
	if reloaded.Status != models.LoanStatusCompleted {
		t.Errorf("expected completed, got %s", reloaded.Status)
	}

	t.Run("unknown_status", func(t *testing.T) {
		err := service.SetStatus(profile.ID, loan.ID, models.LoanStatus("defaulted"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteLoanCascadesToLedger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	profile := testutil.CreateTestProfile(t, db)
	category := testutil.CreateTestCategory(t, db, profile.ID, models.CategoryKindExpense)
	service, _ := newLoanService(db)

	loan, err := service.Register(LoanInput{
		ProfileID:       profile.ID,
		Description:     "Car loan",
		TotalAmount:     110000,
		PrincipalAmount: 100000,
		InterestAmount:  10000,
		Installments:    10,
	})
	testutil.AssertNoError(t, err)

	keeper := testutil.CreateTestEntry(t, db, profile.ID, category.ID,
		models.EntryKindExpense, 500, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	testutil.AssertNoError(t, service.Delete(profile.ID, loan.ID))

	_, err = service.GetLoanByID(profile.ID, loan.ID)
	testutil.AssertAppError(t, err, "LOAN_NOT_FOUND")

	var count int64
	db.Model(&models.LedgerEntry{}).Where("bank_loan_id = ?", loan.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected the loan's ledger rows removed, got %d", count)
	}

	// Unrelated entries survive.
	var remaining models.LedgerEntry
	testutil.AssertNoError(t, db.First(&remaining, "id = ?", keeper.ID).Error)
}
