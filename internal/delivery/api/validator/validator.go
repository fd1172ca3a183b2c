// Package validator adapts go-playground/validator to echo's Validator.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	domainerrors "vigil/internal/domain/errors"
	"vigil/internal/errors"

	"github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "field '%s' is required",
	"email":    "field '%s' must be a valid email address",
	"min":      "field '%s' must be at least %s characters long",
	"max":      "field '%s' must be no longer than %s characters",
	"len":      "field '%s' must be exactly %s characters long",
	"numeric":  "field '%s' must contain only digits",
	"oneof":    "field '%s' must be one of [%s]",
	"uuid":     "field '%s' must be a valid UUID",
}

// CustomValidator validates bound request structs.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a validator that reports fields by their JSON names.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	return &CustomValidator{validate: v}
}

// Validate implements echo.Validator. Failures are returned as ErrValidationFailed
// with one message per offending field.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(err.Error()))
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fieldMessage(fe))
	}

	return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(strings.Join(details, "; ")))
}

func fieldMessage(fe validator.FieldError) string {
	msg, ok := messages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("field '%s' is invalid: %s", fe.Field(), fe.Tag())
	}
	if strings.Count(msg, "%s") == 2 {
		return fmt.Sprintf(msg, fe.Field(), fe.Param())
	}

	return fmt.Sprintf(msg, fe.Field())
}
