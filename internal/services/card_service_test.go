package services

import (
	"testing"

	"centavo/internal/models"
	"centavo/internal/testutil"
)

func TestCreateCard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	profile := testutil.CreateTestProfile(t, db)
	service := NewCardService(db)

	t.Run("success", func(t *testing.T) {
		card, err := service.CreateCard(profile.ID, "Nubank", "mastercard", 28, 5, 500000)
		testutil.AssertNoError(t, err)
		if card.ClosingDay != 28 || card.DueDay != 5 {
			t.Errorf("unexpected cycle days: %d/%d", card.ClosingDay, card.DueDay)
		}
	})

	t.Run("rejects_empty_name", func(t *testing.T) {
		_, err := service.CreateCard(profile.ID, "", "visa", 28, 5, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("zero_days_mean_unset", func(t *testing.T) {
		card, err := service.CreateCard(profile.ID, "Paper card", "", 0, 0, 0)
		testutil.AssertNoError(t, err)
		if card.ClosingDay != 0 || card.DueDay != 0 {
			t.Errorf("expected unset cycle days, got %d/%d", card.ClosingDay, card.DueDay)
		}
	})

	t.Run("rejects_day_out_of_range", func(t *testing.T) {
		_, err := service.CreateCard(profile.ID, "Bad", "visa", 32, 5, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteCardKeepsLedgerReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	profile := testutil.CreateTestProfile(t, db)
	cards := NewCardService(db)
	ledger := NewLedgerService(db)

	card, err := cards.CreateCard(profile.ID, "Nubank", "mastercard", 28, 5, 500000)
	testutil.AssertNoError(t, err)

	entry, err := ledger.Record(RecordInput{
		ProfileID:     profile.ID,
		Description:   "Groceries",
		Amount:        5000,
		Kind:          models.EntryKindExpense,
		PaymentMethod: models.PaymentMethodCredit,
		CardID:        &card.ID,
	})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, cards.DeleteCard(profile.ID, card.ID))

	// History keeps pointing at the deleted card.
	reloaded, err := ledger.GetEntryByID(profile.ID, entry.ID)
	testutil.AssertNoError(t, err)
	if reloaded.CardID == nil || *reloaded.CardID != card.ID {
		t.Error("expected the entry to keep its card reference")
	}
}
