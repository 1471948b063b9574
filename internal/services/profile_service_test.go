package services

import (
	"testing"

	"centavo/internal/models"
	"centavo/internal/testutil"
)

func TestCreateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewProfileService(db)

	t.Run("first_profile_becomes_default", func(t *testing.T) {
		profile, err := service.CreateProfile("Main", "person")
		testutil.AssertNoError(t, err)
		if !profile.IsDefault {
			t.Error("expected the first profile to be the default")
		}
	})

	t.Run("second_profile_is_not_default", func(t *testing.T) {
		profile, err := service.CreateProfile("Partner", "person")
		testutil.AssertNoError(t, err)
		if profile.IsDefault {
			t.Error("expected later profiles to not be the default")
		}
	})

	t.Run("rejects_empty_name", func(t *testing.T) {
		_, err := service.CreateProfile("", "person")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSetDefaultProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewProfileService(db)
	first, err := service.CreateProfile("Main", "person")
	testutil.AssertNoError(t, err)
	second, err := service.CreateProfile("Partner", "person")
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, service.SetDefaultProfile(second.ID))

	var flagged []models.Profile
	testutil.AssertNoError(t, db.Where("is_default = ?", true).Find(&flagged).Error)
	if len(flagged) != 1 || flagged[0].ID != second.ID {
		t.Errorf("expected %s to be the single default, got %v", second.ID, flagged)
	}

	// The previous default lost the flag.
	reloaded, err := service.GetProfileByID(first.ID)
	testutil.AssertNoError(t, err)
	if reloaded.IsDefault {
		t.Error("expected the previous default to be cleared")
	}

	t.Run("unknown_profile", func(t *testing.T) {
		err := service.SetDefaultProfile("no-such-profile")
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})
}

func TestGetDefaultProfileSelfHeals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewProfileService(db)
	first, err := service.CreateProfile("Main", "person")
	testutil.AssertNoError(t, err)
	_, err = service.CreateProfile("Partner", "person")
	testutil.AssertNoError(t, err)

	// A crash between clearing and setting the flag can leave no default.
	err = db.Model(&models.Profile{}).Where("1 = 1").Update("is_default", false).Error
	testutil.AssertNoError(t, err)

	healed, err := service.GetDefaultProfile()
	testutil.AssertNoError(t, err)
	if healed.ID != first.ID {
		t.Errorf("expected the oldest profile to be promoted, got %s", healed.ID)
	}

	// The promotion is persisted, not just reported.
	reloaded, err := service.GetProfileByID(first.ID)
	testutil.AssertNoError(t, err)
	if !reloaded.IsDefault {
		t.Error("expected the promoted default to be stored")
	}
}

func TestDeleteProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewProfileService(db)

	t.Run("last_profile_is_protected", func(t *testing.T) {
		only, err := service.CreateProfile("Main", "person")
		testutil.AssertNoError(t, err)

		err = service.DeleteProfile(only.ID)
		testutil.AssertAppError(t, err, "LAST_PROFILE")
	})

	t.Run("deleting_default_promotes_newest", func(t *testing.T) {
		profiles, err := service.GetProfiles()
		testutil.AssertNoError(t, err)
		current := profiles[0]

		_, err = service.CreateProfile("Partner", "person")
		testutil.AssertNoError(t, err)
		newest, err := service.CreateProfile("Kid", "person")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, service.DeleteProfile(current.ID))

		def, err := service.GetDefaultProfile()
		testutil.AssertNoError(t, err)
		if def.ID != newest.ID {
			t.Errorf("expected the newest profile promoted, got %s", def.ID)
		}
	})

	t.Run("unknown_profile", func(t *testing.T) {
		err := service.DeleteProfile("no-such-profile")
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})
}

func TestUpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewProfileService(db)
	profile, err := service.CreateProfile("Main", "person")
	testutil.AssertNoError(t, err)

	updated, err := service.UpdateProfile(profile.ID, "Household", "")
	testutil.AssertNoError(t, err)
	if updated.Name != "Household" {
		t.Errorf("expected renamed profile, got %q", updated.Name)
	}

	// An empty field means "keep".
	reloaded, err := service.GetProfileByID(profile.ID)
	testutil.AssertNoError(t, err)
	if reloaded.Icon != "person" {
		t.Errorf("expected icon kept, got %q", reloaded.Icon)
	}
}
