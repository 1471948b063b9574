package services

import (
	"time"

	"centavo/internal/models"
)

// ProfileServicer defines the contract for profile-related business logic.
type ProfileServicer interface {
	CreateProfile(name, icon string) (*models.Profile, error)
	GetProfiles() ([]models.Profile, error)
	GetProfileByID(id string) (*models.Profile, error)
	GetDefaultProfile() (*models.Profile, error)
	SetDefaultProfile(id string) error
	UpdateProfile(id, name, icon string) (*models.Profile, error)
	DeleteProfile(id string) error
}

// CategoryInput holds the parameters for creating a category.
type CategoryInput struct {
	ProfileID string              `validate:"required"`
	Name      string              `validate:"required"`
	Kind      models.CategoryKind `validate:"category_kind"`
	Icon      string
	Color     string `validate:"omitempty,hex_color"`
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(input CategoryInput) (*models.Category, error)
	GetCategories(profileID string) ([]models.Category, error)
	GetCategoriesByKind(profileID string, kind models.CategoryKind) ([]models.Category, error)
	GetCategoryByID(profileID, categoryID string) (*models.Category, error)
	UpdateCategory(profileID, categoryID, name, icon, color string) (*models.Category, error)
	DeleteCategory(profileID, categoryID string) error
}

// RecordInput holds the parameters for recording a purchase or income.
// Amounts are in cents. Installments above 1 expand the purchase into a
// dated installment group.
type RecordInput struct {
	ProfileID     string           `validate:"required"`
	Description   string           `validate:"required"`
	Amount        int64            `validate:"gt=0"`
	Kind          models.EntryKind `validate:"entry_kind"`
	CategoryID    string
	Date          time.Time
	PaymentMethod string `validate:"payment_method"`
	CardID        *string
	Installments  int `validate:"gte=0"`

	// Loan decomposition, present when the purchase originates from a
	// bank loan.
	InstallmentAmount *int64
	TotalAmount       *int64
	PrincipalAmount   *int64
	InterestAmount    *int64
	BankLoanID        *string
}

// LedgerServicer defines the contract for ledger writes and reads.
type LedgerServicer interface {
	Record(input RecordInput) (*models.LedgerEntry, error)
	GetEntryByID(profileID, entryID string) (*models.LedgerEntry, error)
	GetMonthEntries(profileID string, year, month int) ([]models.LedgerEntry, error)
	GetInstallmentGroup(profileID, parentID string) ([]models.LedgerEntry, error)
	Delete(profileID, entryID string) error
}

// CategoryTotal is one row of a monthly category breakdown.
type CategoryTotal struct {
	CategoryID string           `json:"category_id"`
	Kind       models.EntryKind `json:"kind"`
	Total      int64            `json:"total"`
}

// BalanceServicer defines the read-side aggregation contract.
type BalanceServicer interface {
	MonthlyBalance(profileID string, year, month int) (int64, error)
	TotalBalance(profileID string) (int64, error)
	CategoryBreakdown(profileID string, year, month int) ([]CategoryTotal, error)
}

// RecurringInput holds the parameters for creating or updating a
// recurring obligation.
type RecurringInput struct {
	ProfileID  string `validate:"required"`
	Name       string `validate:"required"`
	Amount     int64  `validate:"gt=0"`
	CategoryID string
	Kind       models.ObligationKind `validate:"obligation_kind"`
	Frequency  models.Frequency      `validate:"frequency"`
	Months     []int                 `validate:"dive,min=1,max=12"`
}

// RecurringServicer defines the contract for recurring obligations.
type RecurringServicer interface {
	Create(input RecurringInput) (*models.RecurringObligation, error)
	GetByID(profileID, obligationID string) (*models.RecurringObligation, error)
	List(profileID string) ([]models.RecurringObligation, error)
	ListApplying(profileID string, month int) ([]models.RecurringObligation, error)
	Update(profileID, obligationID string, input RecurringInput) (*models.RecurringObligation, error)
	SetStatus(profileID, obligationID string, status models.ObligationStatus) error
	Delete(profileID, obligationID string) error
}

// ItemInput holds the parameters for adding a line to a month's cart.
// Either ProductID or Name must be set.
type ItemInput struct {
	ProfileID       string `validate:"required"`
	ShoppingMonthID string `validate:"required"`
	ProductID       *string
	Name            string
	Amount          int64 `validate:"gt=0"`
	Quantity        int   `validate:"gte=0"`
	CategoryID      *string
	ListItemID      *string
}

// ShoppingServicer defines the contract for monthly shopping buckets, the
// product catalog and cart snapshots.
type ShoppingServicer interface {
	GetOrCreateMonth(profileID string, year, month int) (*models.ShoppingMonth, error)
	SetVoucherLimit(profileID, monthID string, limit int64) error
	GetOrCreateProduct(profileID, name string, categoryID *string) (*models.Product, error)
	GetProducts(profileID string) ([]models.Product, error)
	AddItem(input ItemInput) (*models.ShoppingItem, error)
	GetItems(profileID, monthID string) ([]models.ShoppingItem, error)
	DeleteItem(profileID, itemID string) error
	ClearCart(profileID, monthID string) error
	SaveCart(profileID, monthID, name string) (*models.SavedShoppingList, error)
	GetSavedLists(profileID string) ([]models.SavedShoppingList, error)
	DeleteSavedList(profileID, listID string) error
	DeleteSavedItem(profileID, itemID string) error
}

// CardServicer defines the contract for payment cards.
type CardServicer interface {
	CreateCard(profileID, name, brand string, closingDay, dueDay int, limit int64) (*models.Card, error)
	GetCards(profileID string) ([]models.Card, error)
	GetCardByID(profileID, cardID string) (*models.Card, error)
	UpdateCard(profileID, cardID, name, brand string, closingDay, dueDay int, limit int64) (*models.Card, error)
	DeleteCard(profileID, cardID string) error
}

// LoanInput holds the parameters for registering a bank loan. Amounts are
// in cents; InstallmentAmount may be zero to derive it from the total.
type LoanInput struct {
	ProfileID         string `validate:"required"`
	Description       string `validate:"required"`
	TotalAmount       int64  `validate:"gt=0"`
	PrincipalAmount   int64  `validate:"gt=0"`
	InterestAmount    int64  `validate:"gte=0"`
	InstallmentAmount int64  `validate:"gte=0"`
	Installments      int    `validate:"gte=1"`
	CategoryID        string
	StartDate         time.Time
}

// BankLoanServicer defines the contract for bank loans.
type BankLoanServicer interface {
	Register(input LoanInput) (*models.BankLoan, error)
	GetLoanByID(profileID, loanID string) (*models.BankLoan, error)
	GetLoans(profileID string) ([]models.BankLoan, error)
	SetStatus(profileID, loanID string, status models.LoanStatus) error
	Delete(profileID, loanID string) error
}
