package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validPhone accepts digit-only phone numbers of at least 11 digits.
var validPhone validator.Func = func(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if len(phone) < 11 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// registerCustomValidators installs domain-specific binding validators.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("phone", validPhone)
	}
}
