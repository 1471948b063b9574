package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
	"centavo/internal/validator"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category. Name uniqueness per profile is a
// service-level convention, not a store constraint.
func (s *categoryService) CreateCategory(input CategoryInput) (*models.Category, error) {
	if err := validator.Struct(input); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("profile_id = ? AND name = ?", input.ProfileID, input.Name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category with this name already exists")
	}

	category := &models.Category{
		ProfileID: input.ProfileID,
		Name:      input.Name,
		Kind:      input.Kind,
		Icon:      input.Icon,
		Color:     input.Color,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return category, nil
}

// GetCategories retrieves all categories of a profile.
func (s *categoryService) GetCategories(profileID string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("profile_id = ?", profileID).Order("name").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return categories, nil
}

// GetCategoriesByKind retrieves the categories of one kind for a profile.
func (s *categoryService) GetCategoriesByKind(profileID string, kind models.CategoryKind) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("profile_id = ? AND kind = ?", profileID, kind).
		Order("name").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID for a specific profile.
func (s *categoryService) GetCategoryByID(profileID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ? AND profile_id = ?", categoryID, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return &category, nil
}

// UpdateCategory updates an existing category's display fields.
func (s *categoryService) UpdateCategory(profileID, categoryID, name, icon, color string) (*models.Category, error) {
	category, err := s.GetCategoryByID(profileID, categoryID)
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
	if color != "" {
		if err := validator.Var(color, "hex_color"); err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "color must be a hex value like #A1B2C3")
		}
		updates["color"] = color
	}
	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStore, err)
		}
	}
	return category, nil
}

// DeleteCategory deletes a category unless it is still referenced by a
// ledger entry, a recurring obligation or a bank loan. The check is done
// here; the store has no foreign keys.
func (s *categoryService) DeleteCategory(profileID, categoryID string) error {
	if _, err := s.GetCategoryByID(profileID, categoryID); err != nil {
		return err
	}

	referencing := []interface{}{
		&models.LedgerEntry{},
		&models.RecurringObligation{},
		&models.BankLoan{},
	}
	for _, model := range referencing {
		var count int64
		if err := s.db.Model(model).
			Where("category_id = ?", categoryID).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStore, err)
		}
		if count > 0 {
			return apperrors.ErrCategoryInUse
		}
	}

	if err := s.db.Delete(&models.Category{}, "id = ?", categoryID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}
