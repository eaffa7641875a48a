package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a request field to its messages, the shape rendered under "errors".
type FieldErrors map[string][]string

// Add appends a message for field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// FormatValidationErrors converts validator.ValidationErrors to field keyed messages.
// Any other error (malformed JSON, wrong types) is reported under "body".
func FormatValidationErrors(err error) FieldErrors {
	out := FieldErrors{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		out.Add("body", err.Error())
		return out
	}

	for _, e := range validationErrors {
		out.Add(e.Field(), formatSingleError(e))
	}
	return out
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := strings.ReplaceAll(e.Field(), "_", " ")
	param := e.Param()
	isString := e.Kind().String() == "string"

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "min":
		if isString {
			return fmt.Sprintf("The %s field must be at least %s characters.", label, param)
		}
		return fmt.Sprintf("The %s field must be at least %s.", label, param)
	case "max":
		if isString {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", label, param)
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", label, param)
	case "gte":
		return fmt.Sprintf("The %s field must be greater than or equal to %s.", label, param)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid. Allowed: %s.", label, strings.ReplaceAll(param, "'", ""))
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", label)
	case "numeric", "number":
		return fmt.Sprintf("The %s field must be a number.", label)
	case "eqfield":
		return fmt.Sprintf("The %s field confirmation does not match.", strings.TrimSuffix(label, " confirmation"))
	case "dive":
		return fmt.Sprintf("The %s field is invalid.", label)
	case "valid_name":
		return fmt.Sprintf("The %s field may only contain letters, spaces and common punctuation.", label)
	case "valid_phone":
		return fmt.Sprintf("The %s field must be a valid phone number (7-15 digits).", label)
	case "no_emoji":
		return fmt.Sprintf("The %s field may not contain emoji or special symbols.", label)
	case "max_current_year":
		return fmt.Sprintf("The %s field must not be later than the current year.", label)
	default:
		return fmt.Sprintf("The %s field is invalid.", label)
	}
}
