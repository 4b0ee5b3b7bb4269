package domain

import (
	"errors"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrNotFound is returned by repositories and services when an entity id
// does not exist.
var ErrNotFound = errors.New("not found")

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every failed field check of a single input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Require records "<Field> is required" when value is blank.
func (e *ValidationError) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, RequiredMessage(field))
	}
}

// Err returns nil when no field failed, so callers can return it directly.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// FieldMap returns field -> message, for API responses.
func (e *ValidationError) FieldMap() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := out[f.Field]; !ok {
			out[f.Field] = f.Message
		}
	}
	return out
}

// FieldNames returns the sorted names of the failed fields.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	sort.Strings(names)
	return names
}

// RequiredMessage capitalizes the first letter of field: "vendorId" -> "VendorId is required".
func RequiredMessage(field string) string {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return "Field is required"
	}
	return string(unicode.ToUpper(r)) + field[size:] + " is required"
}
