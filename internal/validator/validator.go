package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/onlinelabs/website/internal/apperr"
)

// Validator is a wrapper around the validator library.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateStruct validates a struct based on its tags. Field failures are
// returned as an *apperr.ValidationError naming each failing field once.
func (v *Validator) ValidateStruct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.NewValidationWrap("validation failed", err)
	}

	seen := make(map[string]bool, len(fieldErrs))
	var fields []string
	for _, fe := range fieldErrs {
		name := fieldName(fe.Namespace())
		if !seen[name] {
			seen[name] = true
			fields = append(fields, name)
		}
	}
	return apperr.NewValidationWrap("validation failed", err, fields...)
}

// fieldName drops the struct name and any slice index: "ContactRequest.interests[2]" -> "interests".
func fieldName(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		namespace = rest
	}
	if i := strings.IndexByte(namespace, '['); i >= 0 {
		namespace = namespace[:i]
	}
	return namespace
}
