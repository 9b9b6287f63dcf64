package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "wraps underlying message",
			err:  NewExitError(errors.New("boom"), ExitSystem),
			want: "boom",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("attempt: %w", ErrStrategyFailed)
	exit := NewSystemError(wrapped, "try a different manager")

	if !errors.Is(exit, ErrStrategyFailed) {
		t.Error("errors.Is should find ErrStrategyFailed through ExitError")
	}

	var target *ExitError
	if !errors.As(exit, &target) {
		t.Fatal("errors.As should match *ExitError")
	}
	if target.Code != ExitSystem {
		t.Errorf("Code = %d, want %d", target.Code, ExitSystem)
	}
	if target.Suggestion != "try a different manager" {
		t.Errorf("Suggestion = %q", target.Suggestion)
	}
}

func TestNewUserError(t *testing.T) {
	err := NewUserError(ErrInvalidMode, "valid modes: auto, ephemeral, project-local, global")
	if err.Code != ExitUser {
		t.Errorf("Code = %d, want %d", err.Code, ExitUser)
	}
	if !errors.Is(err, ErrInvalidMode) {
		t.Error("should unwrap to ErrInvalidMode")
	}
}
