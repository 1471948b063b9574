// Package errors provides the structured error types used by the centavo
// persistence core. Service-layer failures are reported as AppError values
// with stable codes so callers (screens, view models) can branch on the
// reason without parsing messages.
package errors

// AppError represents a structured application error with a stable code,
// a human-readable message and an optional internal cause.
type AppError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Internal error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		Internal: internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  message,
		Internal: sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput = &AppError{Code: "INVALID_INPUT", Message: "Invalid input"}
	ErrStore        = &AppError{Code: "STORE_ERROR", Message: "A store operation failed"}
)

// Profile errors.
var (
	ErrProfileNotFound = &AppError{Code: "PROFILE_NOT_FOUND", Message: "Profile not found"}
	ErrLastProfile     = &AppError{Code: "LAST_PROFILE", Message: "The last profile cannot be deleted"}
)

// Category errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found"}
	ErrCategoryInUse    = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is referenced by existing records"}
)

// Ledger errors.
var (
	ErrEntryNotFound = &AppError{Code: "ENTRY_NOT_FOUND", Message: "Ledger entry not found"}
)

// Card errors.
var (
	ErrCardNotFound = &AppError{Code: "CARD_NOT_FOUND", Message: "Card not found"}
)

// Bank loan errors.
var (
	ErrLoanNotFound = &AppError{Code: "LOAN_NOT_FOUND", Message: "Bank loan not found"}
)

// Recurring obligation errors.
var (
	ErrObligationNotFound = &AppError{Code: "OBLIGATION_NOT_FOUND", Message: "Recurring obligation not found"}
	ErrMonthsRequired     = &AppError{Code: "MONTHS_REQUIRED", Message: "A specific-months obligation needs at least one selected month"}
)

// Shopping errors.
var (
	ErrMonthNotFound     = &AppError{Code: "MONTH_NOT_FOUND", Message: "Shopping month not found"}
	ErrProductNotFound   = &AppError{Code: "PRODUCT_NOT_FOUND", Message: "Product not found"}
	ErrItemNotFound      = &AppError{Code: "ITEM_NOT_FOUND", Message: "Shopping item not found"}
	ErrSavedListNotFound = &AppError{Code: "SAVED_LIST_NOT_FOUND", Message: "Saved shopping list not found"}
)
