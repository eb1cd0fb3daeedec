package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// Phone numbers arrive in E.164 form, leading + and 7 to 15 digits.
var phoneRe = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("phone_intl", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = err.Tag()
	}
	return errors
}
