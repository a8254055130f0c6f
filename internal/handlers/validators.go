package handlers

import (
	"fmt"
	"sync"

	"github.com/SscSPs/wallet_ledger/internal/utils/money"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the wallet binding tags to gin's validator.
func RegisterValidators() error {
	var err error
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err = v.RegisterValidation("decimal_amount", validateDecimalAmount); err != nil {
			return
		}
		err = v.RegisterValidation("iso4217", validateCurrencyCode)
	})
	return err
}

// decimal_amount: a positive decimal string with at most two fractional digits.
func validateDecimalAmount(fl validator.FieldLevel) bool {
	_, err := money.ParseAmount(fl.Field().String())
	return err == nil
}

// iso4217: three ASCII letters, any case.
func validateCurrencyCode(fl validator.FieldLevel) bool {
	_, err := money.NormalizeCurrency(fl.Field().String())
	return err == nil
}
