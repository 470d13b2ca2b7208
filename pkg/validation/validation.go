package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v *validator.Validate

// datasetExts are the file extensions the loader understands.
var datasetExts = []string{".csv", ".json", ".xls", ".xlsx"}

// Validator returns a singleton validator with custom rules registered.
func Validator() *validator.Validate {
	if v == nil {
		v = validator.New()
		// Custom: dataset path must have a supported extension (case-insensitive)
		_ = v.RegisterValidation("dataset_ext", func(fl validator.FieldLevel) bool {
			s := strings.ToLower(strings.TrimSpace(fl.Field().String()))
			if s == "" {
				return false
			}
			for _, ext := range datasetExts {
				if strings.HasSuffix(s, ext) {
					return true
				}
			}
			return false
		})
	}
	return v
}

// ValidateStruct validates a struct and returns a user-friendly error string
// suitable for tool errors. Returns empty string when valid.
func ValidateStruct(s any) string {
	if err := Validator().Struct(s); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			fe := ve[0]
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				return fmt.Sprintf("%s is required", field)
			case "oneof":
				return fmt.Sprintf("%s must be one of: %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
			case "dataset_ext":
				return fmt.Sprintf("%s must be a supported dataset file (%s)", field, strings.Join(datasetExts, ", "))
			case "min", "max", "gte", "lte":
				return fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param())
			}
			return fmt.Sprintf("invalid %s", field)
		}
		return "invalid inputs"
	}
	return ""
}
