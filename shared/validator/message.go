package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"

	"github.com/evowilliamson/todo/shared/failure"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"uuid":     "{field} must be a valid UUID",
	}
)

func translate(valErr val.FieldError) string {
	errStr := messages[valErr.Tag()]
	if errStr == "" {
		return valErr.Error()
	}

	errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
	errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

	return errStr
}

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			return translate(valErr)
		}

		return valErrors.Error()
	}

	return err.Error()
}

// fieldMessages maps every failed field to its translated message.
func fieldMessages(err error) []failure.FieldError {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return nil
	}

	fields := make([]failure.FieldError, 0, len(valErrors))
	for _, valErr := range valErrors {
		fields = append(fields, failure.FieldError{
			Field:   valErr.Field(),
			Message: translate(valErr),
		})
	}

	return fields
}
