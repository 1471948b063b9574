package services

import (
	"errors"

	"gorm.io/gorm"

	"centavo/internal/database"
	apperrors "centavo/internal/errors"
	"centavo/internal/models"
	"centavo/internal/validator"
)

// shoppingService handles monthly shopping buckets, the product catalog
// and cart snapshots. The get-or-create resolvers guarantee at most one
// row per key even when two calls race: insert optimistically, then
// resolve by reading. No lock is taken around the check-then-insert
// sequence; the uniqueness constraint arbitrates and the loser re-reads.
type shoppingService struct {
	db *gorm.DB
}

// NewShoppingService creates a new ShoppingServicer.
func NewShoppingService(db *gorm.DB) ShoppingServicer {
	return &shoppingService{db: db}
}

// GetOrCreateMonth returns the (year, month, profile) bucket, creating it
// lazily on first access. A pre-profile legacy row holding the key is
// adopted by backfilling its profile id.
func (s *shoppingService) GetOrCreateMonth(profileID string, year, month int) (*models.ShoppingMonth, error) {
	if profileID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "profile ID is required")
	}
	if month < 1 || month > 12 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}

	var existing models.ShoppingMonth
	err := s.db.First(&existing, "year = ? AND month = ? AND profile_id = ?", year, month, profileID).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	// A pre-profile legacy row may hold the key without any unique index
	// left to make the insert below fail, so it is adopted up front rather
	// than shadowed by a fresh bucket.
	err = s.db.First(&existing, "year = ? AND month = ? AND profile_id IS NULL", year, month).Error
	if err == nil {
		if err := s.db.Model(&existing).Update("profile_id", profileID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStore, err)
		}
		existing.ProfileID = profileID
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	bucket := &models.ShoppingMonth{ProfileID: profileID, Year: year, Month: month}
	insertErr := s.db.Create(bucket).Error
	if insertErr == nil {
		return bucket, nil
	}
	if !isUniqueViolation(insertErr) {
		return nil, apperrors.Wrap(apperrors.ErrStore, insertErr)
	}

	// Another caller won the race, or a legacy row holds the key under
	// the older (year, month) shape.
	err = s.db.First(&existing, "year = ? AND month = ? AND profile_id = ?", year, month, profileID).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	err = s.db.First(&existing, "year = ? AND month = ? AND profile_id IS NULL", year, month).Error
	if err == nil {
		if err := s.db.Model(&existing).Update("profile_id", profileID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStore, err)
		}
		existing.ProfileID = profileID
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	// No row under either key shape: the violation was not a benign race.
	return nil, apperrors.Wrap(apperrors.ErrStore, insertErr)
}

// SetVoucherLimit updates the voucher limit of a month bucket.
func (s *shoppingService) SetVoucherLimit(profileID, monthID string, limit int64) error {
	if limit < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "voucher limit cannot be negative")
	}
	bucket, err := s.getMonth(profileID, monthID)
	if err != nil {
		return err
	}
	if err := s.db.Model(bucket).Update("voucher_limit", limit).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

// GetOrCreateProduct returns the catalog entry for (name, profile),
// creating it on first use. The catalog is append-only and shared across
// months. Rows stamped with the legacy placeholder (or no profile at all,
// when the uniqueness rebuild has not run) are adopted on conflict.
func (s *shoppingService) GetOrCreateProduct(profileID, name string, categoryID *string) (*models.Product, error) {
	if profileID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "profile ID is required")
	}
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product name is required")
	}

	var existing models.Product
	err := s.db.First(&existing, "name = ? AND profile_id = ?", name, profileID).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	product := &models.Product{ProfileID: profileID, Name: name, CategoryID: categoryID}
	insertErr := s.db.Create(product).Error
	if insertErr == nil {
		return product, nil
	}
	if !isUniqueViolation(insertErr) {
		return nil, apperrors.Wrap(apperrors.ErrStore, insertErr)
	}

	err = s.db.First(&existing, "name = ? AND profile_id = ?", name, profileID).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	err = s.db.First(&existing,
		"name = ? AND (profile_id IS NULL OR profile_id = ?)", name, database.LegacyProfileID).Error
	if err == nil {
		if err := s.db.Model(&existing).Update("profile_id", profileID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStore, err)
		}
		existing.ProfileID = profileID
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	return nil, apperrors.Wrap(apperrors.ErrStore, insertErr)
}

// GetProducts retrieves a profile's product catalog.
func (s *shoppingService) GetProducts(profileID string) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("profile_id = ?", profileID).Order("name").Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return products, nil
}

// AddItem adds a line to a month's live cart.
func (s *shoppingService) AddItem(input ItemInput) (*models.ShoppingItem, error) {
	if err := validator.Struct(input); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	if input.ProductID == nil && input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "either a product or a name is required")
	}
	if _, err := s.getMonth(input.ProfileID, input.ShoppingMonthID); err != nil {
		return nil, err
	}
	if input.ProductID != nil {
		var product models.Product
		err := s.db.First(&product, "id = ? AND profile_id = ?", *input.ProductID, input.ProfileID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStore, err)
		}
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	item := &models.ShoppingItem{
		ProfileID:       input.ProfileID,
		ShoppingMonthID: input.ShoppingMonthID,
		ProductID:       input.ProductID,
		Name:            input.Name,
		Amount:          input.Amount,
		Quantity:        quantity,
		CategoryID:      input.CategoryID,
		ListItemID:      input.ListItemID,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return item, nil
}

// GetItems retrieves the live cart of a month bucket.
func (s *shoppingService) GetItems(profileID, monthID string) ([]models.ShoppingItem, error) {
	if _, err := s.getMonth(profileID, monthID); err != nil {
		return nil, err
	}
	var items []models.ShoppingItem
	if err := s.db.Where("shopping_month_id = ?", monthID).
		Order("created_at").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return items, nil
}

// DeleteItem removes a single cart line.
func (s *shoppingService) DeleteItem(profileID, itemID string) error {
	var item models.ShoppingItem
	if err := s.db.First(&item, "id = ? AND profile_id = ?", itemID, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrItemNotFound
		}
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	if err := s.db.Delete(&models.ShoppingItem{}, "id = ?", itemID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

// ClearCart removes every line of a month's live cart.
func (s *shoppingService) ClearCart(profileID, monthID string) error {
	if _, err := s.getMonth(profileID, monthID); err != nil {
		return err
	}
	if err := s.db.Delete(&models.ShoppingItem{}, "shopping_month_id = ?", monthID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

// SaveCart freezes the month's cart into a named snapshot and clears the
// live cart. An empty cart cannot be saved; saved lists never exist
// without items.
func (s *shoppingService) SaveCart(profileID, monthID, name string) (*models.SavedShoppingList, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "list name is required")
	}
	items, err := s.GetItems(profileID, monthID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "cannot save an empty cart")
	}

	list := &models.SavedShoppingList{
		ProfileID:       profileID,
		ShoppingMonthID: monthID,
		Name:            name,
	}
	if err := s.db.Create(list).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	for _, item := range items {
		saved := models.SavedShoppingItem{
			ListID:     list.ID,
			ProductID:  item.ProductID,
			Name:       item.Name,
			Amount:     item.Amount,
			Quantity:   item.Quantity,
			CategoryID: item.CategoryID,
		}
		if err := s.db.Create(&saved).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStore, err)
		}
		list.Items = append(list.Items, saved)
	}

	if err := s.db.Delete(&models.ShoppingItem{}, "shopping_month_id = ?", monthID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return list, nil
}

// GetSavedLists retrieves a profile's saved lists with their items.
func (s *shoppingService) GetSavedLists(profileID string) ([]models.SavedShoppingList, error) {
	var lists []models.SavedShoppingList
	err := s.db.Preload("Items").
		Where("profile_id = ?", profileID).
		Order("created_at DESC").Find(&lists).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return lists, nil
}

// DeleteSavedList removes a saved list as a unit with all its items.
func (s *shoppingService) DeleteSavedList(profileID, listID string) error {
	var list models.SavedShoppingList
	if err := s.db.First(&list, "id = ? AND profile_id = ?", listID, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSavedListNotFound
		}
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	if err := s.db.Delete(&models.SavedShoppingItem{}, "list_id = ?", listID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	if err := s.db.Delete(&models.SavedShoppingList{}, "id = ?", listID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

// DeleteSavedItem removes one frozen line. Deleting the last item of a
// list deletes the list itself.
func (s *shoppingService) DeleteSavedItem(profileID, itemID string) error {
	var item models.SavedShoppingItem
	if err := s.db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrItemNotFound
		}
		return apperrors.Wrap(apperrors.ErrStore, err)
	}

	var list models.SavedShoppingList
	if err := s.db.First(&list, "id = ? AND profile_id = ?", item.ListID, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSavedListNotFound
		}
		return apperrors.Wrap(apperrors.ErrStore, err)
	}

	if err := s.db.Delete(&models.SavedShoppingItem{}, "id = ?", itemID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}

	var remaining int64
	if err := s.db.Model(&models.SavedShoppingItem{}).
		Where("list_id = ?", list.ID).Count(&remaining).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	if remaining == 0 {
		if err := s.db.Delete(&models.SavedShoppingList{}, "id = ?", list.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStore, err)
		}
	}
	return nil
}

// getMonth loads a month bucket and checks it belongs to the profile.
func (s *shoppingService) getMonth(profileID, monthID string) (*models.ShoppingMonth, error) {
	var bucket models.ShoppingMonth
	if err := s.db.First(&bucket, "id = ? AND profile_id = ?", monthID, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMonthNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return &bucket, nil
}
