package utils

import (
	"regexp"

	"medirec-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("patient_code", validatePatientCode)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePatientCode(fl validator.FieldLevel) bool {
	return regexp.MustCompile(constvars.RegexPatientCode).MatchString(fl.Field().String())
}
