package services

import (
	"testing"
	"time"

	"centavo/internal/models"
	"centavo/internal/testutil"
)

// TestMonthLifecycle walks a month the way the app does: salary in,
// a fixed bill, an installment purchase, a shopping run saved as a list,
// then checks the balance reflects all of it.
func TestMonthLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	profiles := NewProfileService(db)
	categories := NewCategoryService(db)
	ledger := NewLedgerService(db)
	recurring := NewRecurringService(db)
	shopping := NewShoppingService(db)
	balances := NewBalanceService(db)

	profile, err := profiles.CreateProfile("Main", "person")
	testutil.AssertNoError(t, err)

	salary, err := categories.CreateCategory(CategoryInput{
		ProfileID: profile.ID,
		Name:      "Salary",
		Kind:      models.CategoryKindIncome,
		Icon:      "wallet",
		Color:     "#00AA00",
	})
	testutil.AssertNoError(t, err)
	groceries, err := categories.CreateCategory(CategoryInput{
		ProfileID: profile.ID,
		Name:      "Groceries",
		Kind:      models.CategoryKindExpense,
		Icon:      "cart",
		Color:     "#AA0000",
	})
	testutil.AssertNoError(t, err)

	// Salary arrives.
	_, err = ledger.Record(RecordInput{
		ProfileID:   profile.ID,
		Description: "Salary",
		Amount:      500000,
		Kind:        models.EntryKindIncome,
		CategoryID:  salary.ID,
		Date:        time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	testutil.AssertNoError(t, err)

	// Rent is a fixed bill, never a ledger row.
	_, err = recurring.Create(RecurringInput{
		ProfileID: profile.ID,
		Name:      "Rent",
		Amount:    150000,
		Kind:      models.ObligationKindFixedBill,
		Frequency: models.FrequencyAllMonths,
	})
	testutil.AssertNoError(t, err)

	// A purchase in three installments; only the first lands in March.
	_, err = ledger.Record(RecordInput{
		ProfileID:     profile.ID,
		Description:   "Blender",
		Amount:        30000,
		Kind:          models.EntryKindExpense,
		CategoryID:    groceries.ID,
		Date:          time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		PaymentMethod: models.PaymentMethodCredit,
		Installments:  3,
	})
	testutil.AssertNoError(t, err)

	// The shopping run.
	bucket, err := shopping.GetOrCreateMonth(profile.ID, 2025, 3)
	testutil.AssertNoError(t, err)
	rice, err := shopping.GetOrCreateProduct(profile.ID, "Rice", nil)
	testutil.AssertNoError(t, err)
	_, err = shopping.AddItem(ItemInput{
		ProfileID:       profile.ID,
		ShoppingMonthID: bucket.ID,
		ProductID:       &rice.ID,
		Amount:          2500,
		Quantity:        2,
	})
	testutil.AssertNoError(t, err)

	// The cart total goes to the ledger, the cart itself gets frozen.
	_, err = ledger.Record(RecordInput{
		ProfileID:   profile.ID,
		Description: "Supermarket",
		Amount:      5000,
		Kind:        models.EntryKindExpense,
		CategoryID:  groceries.ID,
		Date:        time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
	})
	testutil.AssertNoError(t, err)
	_, err = shopping.SaveCart(profile.ID, bucket.ID, "March groceries")
	testutil.AssertNoError(t, err)

	// March: salary minus rent, one blender installment, the supermarket.
	march, err := balances.MonthlyBalance(profile.ID, 2025, 3)
	testutil.AssertNoError(t, err)
	want := int64(500000 - 150000 - 10000 - 5000)
	if march != want {
		t.Errorf("expected March balance %d, got %d", want, march)
	}

	// April: no salary, rent still due, the second installment lands.
	april, err := balances.MonthlyBalance(profile.ID, 2025, 4)
	testutil.AssertNoError(t, err)
	want = int64(-150000 - 10000)
	if april != want {
		t.Errorf("expected April balance %d, got %d", want, april)
	}

	// The month's entries are all there.
	entries, err := ledger.GetMonthEntries(profile.ID, 2025, 3)
	testutil.AssertNoError(t, err)
	if len(entries) != 3 {
		t.Errorf("expected 3 March entries, got %d", len(entries))
	}
}
