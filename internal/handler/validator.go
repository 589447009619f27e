package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/moodi-labs/moodi-backend/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("time_bucket", validateTimeBucket)
	_ = v.RegisterValidation("age_bucket", validateAgeBucket)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// without leaking internal struct names.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "time_bucket":
			errs[field] = "Invalid time bucket"
		case "age_bucket":
			errs[field] = "Invalid age bucket"
		case "hexcolor":
			errs[field] = "Must be a hex color like #AABBCC"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// Empty values pass; pair with 'required' where the field is mandatory
func validateTimeBucket(fl validator.FieldLevel) bool {
	bucket := fl.Field().String()
	if bucket == "" {
		return true
	}
	return domain.IsValidTimeBucket(domain.TimeBucket(bucket))
}

func validateAgeBucket(fl validator.FieldLevel) bool {
	bucket := fl.Field().String()
	if bucket == "" {
		return true
	}
	return domain.IsValidAgeBucket(domain.AgeBucket(bucket))
}
