package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New(ErrCodeCompanyNotFound, "no quote for %q", "Acme Corp")

	if err.Code != ErrCodeCompanyNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeCompanyNotFound)
	}
	if want := `no quote for "Acme Corp"`; err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
	if want := `COMPANY_NOT_FOUND: no quote for "Acme Corp"`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:6379: connection refused")
	err := Wrap(ErrCodeNetwork, cause, "connect to redis")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}
	if got := err.Error(); got != "NETWORK_ERROR: connect to redis: "+cause.Error() {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs(t *testing.T) {
	report := New(ErrCodeInvalidReport, "influence_chains is empty")

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"same code", report, ErrCodeInvalidReport, true},
		{"other code", report, ErrCodeInvalidInput, false},
		{"outer code of nested error", Wrap(ErrCodeFileNotFound, report, "read report.yaml"), ErrCodeFileNotFound, true},
		{"fmt wrapped", fmt.Errorf("load: %w", report), ErrCodeInvalidReport, true},
		{"plain error", errors.New("boom"), ErrCodeInvalidReport, false},
		{"nil", nil, ErrCodeInvalidReport, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded", New(ErrCodeInvalidViewport, "width must be positive"), ErrCodeInvalidViewport},
		{"fmt wrapped", fmt.Errorf("layout: %w", New(ErrCodeInvalidVizType, "radial")), ErrCodeInvalidVizType},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid format", New(ErrCodeInvalidFormat, "bad"), http.StatusBadRequest},
		{"invalid report", New(ErrCodeInvalidReport, "bad"), http.StatusBadRequest},
		{"company not found", New(ErrCodeCompanyNotFound, "missing"), http.StatusNotFound},
		{"wrapped file not found", fmt.Errorf("load: %w", New(ErrCodeFileNotFound, "missing")), http.StatusNotFound},
		{"network", Wrap(ErrCodeNetwork, errors.New("dial"), "redis"), http.StatusBadGateway},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
