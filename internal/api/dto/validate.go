package dto

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/resistance-admin/pkg/util"
)

var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks payload against its validate tags. Failures are VALIDATION_FAILED
// errors whose details map json field names to the failing rule.
func Validate(payload any) error {
	if err := payloadValidator.Struct(payload); err != nil {
		return apperrors.FromValidation(err)
	}
	return nil
}
