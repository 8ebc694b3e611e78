package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DateLayout is the storage format for calendar dates (lease, payment, due).
const DateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name so messages match what the user typed.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Decimals reach the amount checks as their exact string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "amount", validAmount)
	mustRegister(v, "amount_part", validAmountPart)

	return v
}

// mustRegister adds a decimal check under tag. Tags are fixed at init, so
// a failure is a programming error.
func mustRegister(v *validator.Validate, tag string, check func(decimal.Decimal) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && check(d)
	})
	if err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

// Validate checks the struct tags on v. The first failing field is returned
// as a *ValidationError.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return NewValidationError(fe.Field(), describe(fe))
	}
	return fmt.Errorf("validating input: %w", err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "amount":
		return amountMessage
	case "amount_part":
		return "must be between 0 and " + MaxAmount.StringFixed(centsExp)
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
