package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/arogyacare/blood-api/internal/model"
)

// RegisterValidators installs custom binding rules on gin's validator
// engine. Must run once before the router starts serving.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	return v.RegisterValidation("bloodgroup", func(fl validator.FieldLevel) bool {
		return model.BloodGroup(fl.Field().String()).IsValid()
	})
}
