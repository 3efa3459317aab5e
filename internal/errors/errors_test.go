package apperrors

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config", ConfigError{Message: "unknown algorithm"}, "unknown algorithm"},
		{"config formatted", NewConfigError("invalid value %d for flag %s", -1, "--last-digits"), "invalid value -1 for flag --last-digits"},
		{"calculation", CalculationError{Cause: errors.New("division by zero")}, "division by zero"},
		{"timeout", TimeoutError{Operation: "iterative", Limit: 30 * time.Second}, `operation "iterative" timed out after 30s`},
		{"validation", ValidationError{Field: "n", Message: "must be a non-negative integer"}, `validation error for "n": must be a non-negative integer`},
		{"overflow", OverflowError{N: 94, Width: 64}, "term 94 overflows a 64-bit unsigned integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	t.Parallel()

	t.Run("OverflowError inside CalculationError", func(t *testing.T) {
		t.Parallel()
		err := CalculationError{Cause: OverflowError{N: 100, Width: 64}}
		var target OverflowError
		if !errors.As(err, &target) || target.N != 100 {
			t.Errorf("errors.As should recover OverflowError, got %+v", target)
		}
	})

	t.Run("ValidationError inside WrapError", func(t *testing.T) {
		t.Parallel()
		err := WrapError(ValidationError{Field: "n", Message: "not a number"}, "parsing argument %q", "abc")
		var target ValidationError
		if !errors.As(err, &target) || target.Field != "n" {
			t.Errorf("errors.As should recover ValidationError, got %+v", target)
		}
		if err.Error() != `parsing argument "abc": validation error for "n": not a number` {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("ConfigError via errors.As", func(t *testing.T) {
		t.Parallel()
		var target ConfigError
		if !errors.As(NewConfigError("x"), &target) {
			t.Error("expected ConfigError")
		}
	})

	t.Run("context error through CalculationError", func(t *testing.T) {
		t.Parallel()
		if !errors.Is(CalculationError{Cause: context.Canceled}, context.Canceled) {
			t.Error("errors.Is should see context.Canceled")
		}
	})
}

func TestWrapError_Nil(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil, ...) should return nil")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped", WrapError(context.Canceled, "calculation"), true},
		{"regular", errors.New("some error"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.want {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Distinct(t *testing.T) {
	t.Parallel()
	codes := []int{ExitSuccess, ExitErrorGeneric, ExitErrorTimeout, ExitErrorMismatch, ExitErrorConfig, ExitErrorOverflow, ExitErrorCanceled}
	seen := make(map[int]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
	if ExitSuccess != 0 || ExitErrorCanceled != 130 {
		t.Error("ExitSuccess must be 0 and ExitErrorCanceled 130 (SIGINT convention)")
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"invalid input", ValidationError{Field: "n", Message: "not a number"}, ExitErrorConfig},
		{"wrapped invalid input", WrapError(ValidationError{Field: "n", Message: "x"}, "parse"), ExitErrorConfig},
		{"overflow", OverflowError{N: 94, Width: 64}, ExitErrorOverflow},
		{"timeout type", TimeoutError{Operation: "calc", Limit: time.Second}, ExitErrorTimeout},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout},
		{"canceled", CalculationError{Cause: context.Canceled}, ExitErrorCanceled},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
