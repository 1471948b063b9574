package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
)

// profileService handles profile-related business logic. It is the sole
// enforcer of the "exactly one default profile" rule; the store carries no
// constraint for it.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// CreateProfile creates a profile. The first profile ever created becomes
// the default.
func (s *profileService) CreateProfile(name, icon string) (*models.Profile, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "profile name is required")
	}

	var count int64
	if err := s.db.Model(&models.Profile{}).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	profile := &models.Profile{
		Name:      name,
		Icon:      icon,
		IsDefault: count == 0,
	}
	if err := s.db.Create(profile).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return profile, nil
}

// GetProfiles returns all profiles ordered by creation.
func (s *profileService) GetProfiles() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := s.db.Order("created_at").Find(&profiles).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return profiles, nil
}

// GetProfileByID retrieves a profile by ID.
func (s *profileService) GetProfileByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return &profile, nil
}

// GetDefaultProfile returns the default profile. If no profile is flagged
// (a prior crash between the clear and set statements), the oldest profile
// is promoted so the invariant self-heals.
func (s *profileService) GetDefaultProfile() (*models.Profile, error) {
	var profile models.Profile
	err := s.db.First(&profile, "is_default = ?", true).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	if err := s.db.Order("created_at").First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	if err := s.db.Model(&profile).Update("is_default", true).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return &profile, nil
}

// SetDefaultProfile makes the given profile the single default.
func (s *profileService) SetDefaultProfile(id string) error {
	if _, err := s.GetProfileByID(id); err != nil {
		return err
	}

	if err := s.db.Model(&models.Profile{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	if err := s.db.Model(&models.Profile{}).
		Where("id = ?", id).
		Update("is_default", true).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

// UpdateProfile updates a profile's display fields.
func (s *profileService) UpdateProfile(id, name, icon string) (*models.Profile, error) {
	profile, err := s.GetProfileByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if icon != "" {
		updates["icon"] = icon
	}
	if len(updates) > 0 {
		if err := s.db.Model(profile).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStore, err)
		}
	}
	return profile, nil
}

// DeleteProfile deletes a profile. The last profile cannot be deleted;
// when the default is deleted, the most recently created remaining profile
// takes over as default.
func (s *profileService) DeleteProfile(id string) error {
	profile, err := s.GetProfileByID(id)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Profile{}).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	if count <= 1 {
		return apperrors.ErrLastProfile
	}

	if err := s.db.Delete(&models.Profile{}, "id = ?", id).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}

	if profile.IsDefault {
		var next models.Profile
		if err := s.db.Order("created_at DESC").First(&next).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStore, err)
		}
		if err := s.db.Model(&next).Update("is_default", true).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStore, err)
		}
	}
	return nil
}
