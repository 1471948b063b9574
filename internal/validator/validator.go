// Package validator wraps go-playground/validator with the custom rules
// used by service-layer input structs.
package validator

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var (
	instance *validator.Validate
	once     sync.Once
)

// Get returns the shared validator instance with all custom rules registered.
func Get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		_ = instance.RegisterValidation("hex_color", validateHexColor)
		_ = instance.RegisterValidation("entry_kind", validateEntryKind)
		_ = instance.RegisterValidation("category_kind", validateCategoryKind)
		_ = instance.RegisterValidation("obligation_kind", validateObligationKind)
		_ = instance.RegisterValidation("frequency", validateFrequency)
		_ = instance.RegisterValidation("loan_status", validateLoanStatus)
		_ = instance.RegisterValidation("payment_method", validatePaymentMethod)
	})
	return instance
}

// Struct validates a struct against its validate tags.
func Struct(s interface{}) error {
	return Get().Struct(s)
}

// Var validates a single value against a rule tag.
func Var(field interface{}, tag string) error {
	return Get().Var(field, tag)
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateEntryKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateCategoryKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense", "fixed_bill":
		return true
	}
	return false
}

func validateObligationKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "fixed_bill", "recurring_income":
		return true
	}
	return false
}

func validateFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "all_months", "specific_months":
		return true
	}
	return false
}

func validateLoanStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "completed", "cancelled":
		return true
	}
	return false
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "cash", "debit", "credit", "pix":
		return true
	}
	return false
}
