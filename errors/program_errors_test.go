package errors

import (
	"errors"
	"testing"
)

func TestProgramErrorRendersAsJSON(t *testing.T) {
	err := NewError(ErrCodeInsufficientBalance, "holder 1 cannot cover 50")

	want := `{"code":"insufficient_balance","message":"holder 1 cannot cover 50"}`
	if err.Error() != want {
		t.Errorf("Error() = %s, want %s", err.Error(), want)
	}
}

func TestCodeOf(t *testing.T) {
	if code := CodeOf(NewError(ErrCodeUnauthorized, "nope")); code != ErrCodeUnauthorized {
		t.Errorf("CodeOf = %s, want %s", code, ErrCodeUnauthorized)
	}
	if code := CodeOf(errors.New("plain")); code != ErrCodeInternal {
		t.Errorf("CodeOf(plain) = %s, want %s", code, ErrCodeInternal)
	}
}
