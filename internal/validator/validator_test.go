package validator

import (
	"strings"
	"testing"
)

func TestValidatorKeepsFirstError(t *testing.T) {
	v := New()
	if !v.Valid() {
		t.Fatal("Expected a new validator to be valid")
	}

	v.Check(false, "name", "must not be blank")
	v.Check(false, "name", "must not be more than 100 characters")
	v.Check(true, "year", "must be a four digit year")

	if v.Valid() {
		t.Fatal("Expected validator to be invalid")
	}
	if v.FieldErrors["name"] != "must not be blank" {
		t.Errorf("Expected first message kept, got %q", v.FieldErrors["name"])
	}
	if _, ok := v.FieldErrors["year"]; ok {
		t.Error("Expected no year error")
	}
}

func TestChecks(t *testing.T) {
	if NotBlank(" \t ") || !NotBlank(" a ") {
		t.Error("NotBlank mismatch")
	}
	if !MaxChars(strings.Repeat("ü", 100), 100) || MaxChars(strings.Repeat("a", 101), 100) {
		t.Error("MaxChars should count runes")
	}
	if !Between(1000, 1000, 9999) || Between(999, 1000, 9999) {
		t.Error("Between int mismatch")
	}
	if !Between(10.0, 0, 10) || Between(10.01, 0, 10) {
		t.Error("Between float mismatch")
	}
}

func TestParse(t *testing.T) {
	v := New()
	if n, ok := v.ParseInt(" 2021 ", "year"); !ok || n != 2021 {
		t.Errorf("Expected 2021, got %d %v", n, ok)
	}
	if f, ok := v.ParseFloat("7.5", "rating"); !ok || f != 7.5 {
		t.Errorf("Expected 7.5, got %v %v", f, ok)
	}
	if !v.Valid() {
		t.Fatalf("Unexpected errors: %v", v.FieldErrors)
	}

	v.ParseInt("20x1", "year")
	v.ParseFloat("good", "rating")
	if v.FieldErrors["year"] == "" || v.FieldErrors["rating"] == "" {
		t.Errorf("Expected year and rating errors, got %v", v.FieldErrors)
	}
}
