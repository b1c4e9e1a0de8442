package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	if Validate != nil {
		return
	}
	Validate = validator.New(validator.WithRequiredStructEnabled())
}

// ValidationMessages flattens validator errors into one line per field, in
// the form used by the HTML views.
func ValidationMessages(err error) []string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.Tag() {
		case "required", "required_unless":
			messages = append(messages, fmt.Sprintf("%s is required", fieldName(e)))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", fieldName(e), e.Param()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", fieldName(e), e.Param()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", fieldName(e)))
		case "url":
			messages = append(messages, fmt.Sprintf("%s must be a valid URL", fieldName(e)))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fieldName(e)))
		}
	}
	return messages
}

func fieldName(e validator.FieldError) string {
	ns := e.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	return ns
}
