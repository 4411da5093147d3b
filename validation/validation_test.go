package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/kbukum/resolver/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("name", "database")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("name", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("name", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorRequiredUUID(t *testing.T) {
	validUUID := uuid.New().String()

	v := New()
	v.RequiredUUID("id", validUUID)
	if v.HasErrors() {
		t.Errorf("expected no errors for valid UUID, got %v", v.Errors())
	}

	v2 := New()
	v2.RequiredUUID("id", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty UUID")
	}

	v3 := New()
	v3.RequiredUUID("id", "not-a-uuid")
	if !v3.HasErrors() {
		t.Error("expected error for invalid UUID")
	}

	v4 := New()
	v4.RequiredUUID("id", uuid.Nil.String())
	if !v4.HasErrors() {
		t.Error("expected error for nil UUID")
	}
}

func TestValidatorOptionalUUID(t *testing.T) {
	v := New()
	v.OptionalUUID("id", "")
	if v.HasErrors() {
		t.Error("expected no error for empty optional UUID")
	}

	v2 := New()
	v2.OptionalUUID("id", "bad-uuid")
	if !v2.HasErrors() {
		t.Error("expected error for invalid optional UUID")
	}
}

func TestValidatorLengths(t *testing.T) {
	v := New()
	v.MaxLength("desc", "short", 10)
	v.MinLength("desc", "short", 3)
	if v.HasErrors() {
		t.Errorf("expected no errors, got %v", v.Errors())
	}

	v2 := New()
	v2.MaxLength("desc", "this is too long", 5)
	v2.MinLength("code", "ab", 6)
	if len(v2.Errors()) != 2 {
		t.Errorf("expected 2 errors, got %v", v2.Errors())
	}
}

func TestValidatorRange(t *testing.T) {
	v := New()
	v.Range("depth", 25, 1, 100)
	if v.HasErrors() {
		t.Error("expected no error for value in range")
	}

	v2 := New()
	v2.Range("depth", 0, 1, 100)
	if !v2.HasErrors() {
		t.Error("expected error for value below range")
	}

	v3 := New()
	v3.Min("count", 5, 10).Max("count", 5, 3)
	if len(v3.Errors()) != 2 {
		t.Errorf("expected 2 errors, got %v", v3.Errors())
	}
}

func TestValidatorOneOf(t *testing.T) {
	scopes := []string{"graph", "application", "cached", "shared", "unique", "container"}

	v := New()
	v.OneOf("default_scope", "graph", scopes)
	if v.HasErrors() {
		t.Error("expected no error for allowed value")
	}

	v2 := New()
	v2.OneOf("default_scope", "session", scopes)
	if !v2.HasErrors() {
		t.Error("expected error for disallowed value")
	}

	v3 := New()
	v3.OneOf("default_scope", "", scopes)
	if v3.HasErrors() {
		t.Error("expected empty value to be skipped")
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New()
	v.Custom(true, "field", "should not appear")
	if v.HasErrors() {
		t.Error("expected no error when condition holds")
	}

	v2 := New()
	v2.Custom(false, "field", "condition failed")
	if !v2.HasErrors() {
		t.Error("expected error when condition fails")
	}
}

func TestValidatorValidateError(t *testing.T) {
	v := New()
	v.Required("name", "")
	v.OneOf("scope", "bogus", []string{"graph"})

	err := v.Validate()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if err.Code != errors.ErrCodeValidation {
		t.Errorf("expected code %s, got %s", errors.ErrCodeValidation, err.Code)
	}
	if !strings.Contains(err.Message, "name: is required") {
		t.Errorf("expected message to mention name, got %q", err.Message)
	}
	fields, ok := err.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected 2 field errors in details, got %v", err.Details)
	}
}

func TestValidatorValidateNilWhenClean(t *testing.T) {
	v := New()
	v.Required("name", "ok")
	if err := v.Validate(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

type testSettings struct {
	Name         string `mapstructure:"name" validate:"required"`
	DefaultScope string `mapstructure:"default_scope" validate:"omitempty,oneof=graph application cached shared unique container"`
}

func TestValidateStructValid(t *testing.T) {
	s := testSettings{Name: "registry", DefaultScope: "cached"}
	if err := Validate(s); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidateStructEmptyOptional(t *testing.T) {
	s := testSettings{Name: "registry"}
	if err := Validate(s); err != nil {
		t.Errorf("expected omitempty field to pass, got %v", err)
	}
}

func TestValidateStructInvalid(t *testing.T) {
	s := testSettings{Name: "", DefaultScope: "session"}
	err := Validate(s)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.IsCode(err, errors.ErrCodeValidation) {
		t.Errorf("expected VALIDATION_FAILED code, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "name: is required") {
		t.Errorf("expected message to mention required name, got %q", msg)
	}
	if !strings.Contains(msg, "default_scope: must be one of") {
		t.Errorf("expected message to use mapstructure tag name, got %q", msg)
	}
}

func TestPackageLevelRequired(t *testing.T) {
	if err := Required("name", "ok"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := Required("name", ""); err == nil {
		t.Error("expected error for empty value")
	}
}

func TestValidateUUIDHelper(t *testing.T) {
	id := uuid.New()
	got, err := ValidateUUID("id", id.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != id {
		t.Errorf("expected %s, got %s", id, got)
	}

	if _, err := ValidateUUID("id", ""); err == nil {
		t.Error("expected error for empty value")
	}
	if _, err := ValidateUUID("id", "nope"); err == nil {
		t.Error("expected error for malformed value")
	}
}
