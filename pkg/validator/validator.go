package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	alphaSpaceRegex = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	ssnRegex        = regexp.MustCompile(`^[0-9]{11}$`)
	idNumberRegex   = regexp.MustCompile(`^[a-zA-Z]{2}[0-9]{6}$`)
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Domain-specific rules: doctor names allow spaces, the national
	// identifier is exactly 11 digits, ID numbers are two letters
	// followed by six digits.
	v.RegisterValidation("alpha_space", func(fl validator.FieldLevel) bool {
		return alphaSpaceRegex.MatchString(fl.Field().String())
	})
	v.RegisterValidation("ssn", func(fl validator.FieldLevel) bool {
		return ssnRegex.MatchString(fl.Field().String())
	})
	v.RegisterValidation("id_number", func(fl validator.FieldLevel) bool {
		return idNumberRegex.MatchString(fl.Field().String())
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "alpha":
				errors[field] = field + " must contain letters only"
			case "alpha_space":
				errors[field] = field + " must contain letters and spaces only"
			case "alphanum":
				errors[field] = field + " must contain letters and numbers only"
			case "ssn":
				errors[field] = field + " must be exactly 11 digits"
			case "id_number":
				errors[field] = field + " must start with two letters followed by six digits"
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
