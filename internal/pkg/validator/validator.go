// Package validator wraps the shared request validator instance.
package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/train-schedule-microservice/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks struct tags and maps failures onto the request-error shape
// handlers return.
func Validate(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		})
	}
	return nil
}
