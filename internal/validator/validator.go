package validator

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validator collects the first error message per form field.
type Validator struct {
	FieldErrors map[string]string
}

func New() *Validator {
	return &Validator{FieldErrors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.FieldErrors) == 0
}

func (v *Validator) AddFieldError(key, message string) {
	if _, exists := v.FieldErrors[key]; !exists {
		v.FieldErrors[key] = message
	}
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddFieldError(key, message)
	}
}

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MaxChars counts runes, not bytes.
func MaxChars(value string, n int) bool {
	return utf8.RuneCountInString(value) <= n
}

func Between[T int | float64](value, lo, hi T) bool {
	return value >= lo && value <= hi
}

// ParseInt validates that value is an integer and records an error otherwise.
func (v *Validator) ParseInt(value, key string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		v.AddFieldError(key, "must be a whole number")
		return 0, false
	}
	return n, true
}

// ParseFloat validates that value is a real number and records an error otherwise.
func (v *Validator) ParseFloat(value, key string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		v.AddFieldError(key, "must be a number")
		return 0, false
	}
	return f, true
}
