package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"yt2t/internal/api/errors"
)

// Validator interface for domain validation
type Validator interface {
	Validate() error
}

// ValidateRequest binds the JSON body, then applies struct tags and domain
// rules. Malformed bodies and tag failures are validation errors (422).
func ValidateRequest(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		validationErrors := make(map[string]string)

		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fieldError := range validationErrs {
				field := strings.ToLower(fieldError.Field())

				switch fieldError.Tag() {
				case "required":
					validationErrors[field] = "is required"
				case "min":
					validationErrors[field] = "is too small"
				case "max":
					validationErrors[field] = "is too large"
				case "oneof":
					validationErrors[field] = "must be one of " + fieldError.Param()
				default:
					validationErrors[field] = "is invalid"
				}
			}
		} else {
			validationErrors["request"] = "invalid JSON format"
		}

		return errors.NewValidationError("Validation failed", validationErrors)
	}

	if validator, ok := req.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ValidateQuery validates query parameters
func ValidateQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			fields := make(map[string]string)
			for _, fieldError := range validationErrs {
				fields[strings.ToLower(fieldError.Field())] = "invalid query parameter"
			}
			apiErr := errors.NewBadRequestError("Invalid query parameters")
			apiErr.Details = fields
			return apiErr
		}
		return errors.NewBadRequestError("Invalid query parameters")
	}

	if validator, ok := req.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return err
		}
	}

	return nil
}
