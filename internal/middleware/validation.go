package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/pradipta/siakad/internal/app/models/dto"
)

var validate = validator.New()

// ValidateStruct runs validator tags on a bound request body and converts
// failures into an ErrorDetail suitable for a 400 response. Returns nil when
// the value passes.
func ValidateStruct(obj interface{}) *dto.ErrorDetail {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error())
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, formatValidationError(fieldErr))
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	detail = detail.WithDetails(messages)
	if len(validationErrs) > 0 {
		detail = detail.WithField(validationErrs[0].Field())
	}
	return detail
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
