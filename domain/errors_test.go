package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "without cause",
			err:  NewInvalidInputError("no source code to analyze", nil),
			want: "[INVALID_INPUT] no source code to analyze",
		},
		{
			name: "with cause",
			err:  NewConfigError("failed to load config", errors.New("permission denied")),
			want: "[CONFIG_ERROR] failed to load config: permission denied",
		},
		{
			name: "file not found",
			err:  NewFileNotFoundError("missing.py", nil),
			want: "[FILE_NOT_FOUND] file not found: missing.py",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDomainErrorAs(t *testing.T) {
	wrapped := fmt.Errorf("running analysis: %w", NewAnalysisError("scan failed", nil))

	var domainErr DomainError
	if !errors.As(wrapped, &domainErr) {
		t.Fatal("expected errors.As to find the domain error")
	}
	if domainErr.Code != ErrCodeAnalysisError {
		t.Errorf("expected code %s, got %s", ErrCodeAnalysisError, domainErr.Code)
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewOutputError("failed to write report", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}
