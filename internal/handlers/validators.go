package handlers

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const decimalAmountTag = "decimal_amount"

var registerValidatorsOnce sync.Once

// registerValidators teaches gin's validator about decimal.Decimal and the decimal_amount rule.
// Routes are unusable without the amount rule, so a registration failure panics at startup.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic(fmt.Sprintf("unexpected gin validator engine %T", binding.Validator.Engine()))
		}
		if err := registerDecimalValidators(v); err != nil {
			panic(err)
		}
	})
}

// registerDecimalValidators registers the decimal type func and the decimal_amount rule on v.
func registerDecimalValidators(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	if err := v.RegisterValidation(decimalAmountTag, validateDecimalAmount); err != nil {
		return fmt.Errorf("failed to register %s validation: %w", decimalAmountTag, err)
	}
	return nil
}

// decimalValue exposes a decimal to the validator as its string form, so "required" sees a value.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// validateDecimalAmount accepts positive amounts representable in minor units.
func validateDecimalAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	m, ok := domain.MoneyFromDecimal(d)
	return ok && m > 0
}
