package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
)

// cardService handles payment-card CRUD. No cross-row invariants live
// here.
type cardService struct {
	db *gorm.DB
}

// NewCardService creates a new CardServicer.
func NewCardService(db *gorm.DB) CardServicer {
	return &cardService{db: db}
}

// CreateCard creates a payment card.
func (s *cardService) CreateCard(profileID, name, brand string, closingDay, dueDay int, limit int64) (*models.Card, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "card name is required")
	}
	if err := validDay(closingDay); err != nil {
		return nil, err
	}
	if err := validDay(dueDay); err != nil {
		return nil, err
	}

	card := &models.Card{
		ProfileID:  profileID,
		Name:       name,
		Brand:      brand,
		ClosingDay: closingDay,
		DueDay:     dueDay,
		Limit:      limit,
	}
	if err := s.db.Create(card).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return card, nil
}

// GetCards retrieves a profile's cards.
func (s *cardService) GetCards(profileID string) ([]models.Card, error) {
	var cards []models.Card
	if err := s.db.Where("profile_id = ?", profileID).Order("name").Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return cards, nil
}

// GetCardByID retrieves a card by ID for a specific profile.
func (s *cardService) GetCardByID(profileID, cardID string) (*models.Card, error) {
	var card models.Card
	if err := s.db.First(&card, "id = ? AND profile_id = ?", cardID, profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCardNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return &card, nil
}

// UpdateCard updates a card's fields.
func (s *cardService) UpdateCard(profileID, cardID, name, brand string, closingDay, dueDay int, limit int64) (*models.Card, error) {
	card, err := s.GetCardByID(profileID, cardID)
	if err != nil {
		return nil, err
	}
	if err := validDay(closingDay); err != nil {
		return nil, err
	}
	if err := validDay(dueDay); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":        name,
		"brand":       brand,
		"closing_day": closingDay,
		"due_day":     dueDay,
		"limit":       limit,
	}
	if err := s.db.Model(card).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return card, nil
}

// DeleteCard deletes a card. Ledger entries keep their card reference for
// historical records.
func (s *cardService) DeleteCard(profileID, cardID string) error {
	if _, err := s.GetCardByID(profileID, cardID); err != nil {
		return err
	}
	if err := s.db.Delete(&models.Card{}, "id = ?", cardID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

// validDay accepts 1-31; zero means the day is unset.
func validDay(day int) error {
	if day < 0 || day > 31 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "day must be between 1 and 31, or 0 when unset")
	}
	return nil
}
