package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := NotRegistered("example.Greeter")
	want := "NOT_REGISTERED: no registration found for example.Greeter"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorStringWithCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := FactoryFailed("example.Greeter", cause)
	want := "FACTORY_FAILED: factory for example.Greeter failed (cause: boom)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := New(ErrCodeFactoryFailed, "factory failed").WithCause(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestCodeOf(t *testing.T) {
	err := NoInstance("example.Greeter")
	if got := CodeOf(err); got != ErrCodeNoInstance {
		t.Errorf("CodeOf = %q, want %q", got, ErrCodeNoInstance)
	}

	wrapped := fmt.Errorf("resolving: %w", err)
	if got := CodeOf(wrapped); got != ErrCodeNoInstance {
		t.Errorf("CodeOf through wrapping = %q, want %q", got, ErrCodeNoInstance)
	}

	if got := CodeOf(stderrors.New("plain")); got != "" {
		t.Errorf("CodeOf for a plain error = %q, want empty", got)
	}
}

func TestIsCode(t *testing.T) {
	err := RegistryClosed("resolve")
	if !IsCode(err, ErrCodeRegistryClosed) {
		t.Error("expected IsCode to match REGISTRY_CLOSED")
	}
	if IsCode(err, ErrCodeNotRegistered) {
		t.Error("IsCode matched the wrong code")
	}
	if IsCode(nil, ErrCodeRegistryClosed) {
		t.Error("IsCode matched a nil error")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "bad settings").
		WithDetail("field", "default_scope").
		WithDetails(map[string]any{"value": "bogus"})

	if err.Details["field"] != "default_scope" {
		t.Errorf("missing detail field, got %v", err.Details)
	}
	if err.Details["value"] != "bogus" {
		t.Errorf("missing merged detail, got %v", err.Details)
	}
}

func TestConstructorDetails(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		code ErrorCode
		key  string
	}{
		{"not registered", NotRegistered("svc"), ErrCodeNotRegistered, "service"},
		{"no instance", NoInstance("svc"), ErrCodeNoInstance, "service"},
		{"factory failed", FactoryFailed("svc", stderrors.New("x")), ErrCodeFactoryFailed, "service"},
		{"type mismatch", TypeMismatch("svc", "*other.Type"), ErrCodeTypeMismatch, "service"},
		{"registry closed", RegistryClosed("resolve"), ErrCodeRegistryClosed, "operation"},
		{"duplicate module", DuplicateModule("core"), ErrCodeDuplicateModule, "module"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("code = %q, want %q", tc.err.Code, tc.code)
			}
			if _, ok := tc.err.Details[tc.key]; !ok {
				t.Errorf("missing detail %q in %v", tc.key, tc.err.Details)
			}
		})
	}
}

func TestMessageOnlyConstructors(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		code ErrorCode
	}{
		{"container mismatch", ContainerMismatch(), ErrCodeContainerMismatch},
		{"invalid config", InvalidConfig("bad scope"), ErrCodeInvalidConfig},
		{"validation", Validation("default_scope: must be one of known scopes"), ErrCodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("code = %q, want %q", tc.err.Code, tc.code)
			}
			if tc.err.Message == "" {
				t.Error("message should not be empty")
			}
		})
	}
}
