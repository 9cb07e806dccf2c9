package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidator builds a validator that reports JSON field names in errors.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validation limits.
const (
	MaxEmailLength    = 254
	MaxPasswordLength = 128
)

// SanitizeEmail trims and lowercases email; returns empty if over max length.
func SanitizeEmail(email string) string {
	s := strings.TrimSpace(strings.ToLower(email))
	if len(s) > MaxEmailLength {
		return ""
	}
	return s
}

// SanitizePassword trims password; returns empty if over max length.
func SanitizePassword(password string) string {
	s := strings.TrimSpace(password)
	if len(s) > MaxPasswordLength {
		return ""
	}
	return s
}

// fieldError is one entry of the field-level detail returned on 400.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// fieldErrors flattens validator output into response entries.
func fieldErrors(err error) []fieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []fieldError{{Field: "", Message: "invalid request"}}
	}
	out := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldError{Field: fieldPath(fe), Message: messageFor(fe)})
	}
	return out
}

// fieldPath renders the JSON location of the failed field, e.g.
// "fullname.firstname" or "vehicle.capacity".
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:] // drop the request struct name
	}
	return strings.Join(parts, ".")
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return "is invalid"
	}
}
