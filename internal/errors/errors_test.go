package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err:  &AppError{Code: ErrCodeNotFound, Message: "record not found"},
			want: "record not found",
		},
		{
			name: "error with cause",
			err:  &AppError{Code: ErrCodeInternal, Message: "failed to seed", Cause: errors.New("underlying error")},
			want: "failed to seed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := fmt.Errorf("seed user: %w", Wrap(cause, ErrCodeInternal, "wrapped error"))

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is through AppError failed for %v", err)
	}
	if GetCode(err) != ErrCodeInternal {
		t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeInternal)
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "ignored"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestWrapf(t *testing.T) {
	err := Wrapf(errors.New("boom"), ErrCodeConflict, "user %s exists", "a@b.c")
	if err.Message != "user a@b.c exists" {
		t.Errorf("Wrapf message = %q", err.Message)
	}
	if !IsConflict(err) {
		t.Errorf("Wrapf should keep the conflict code")
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   func(error) bool
		want bool
	}{
		{name: "not found", err: NotFound("gone"), is: IsNotFound, want: true},
		{name: "validation", err: Validation("bad"), is: IsValidation, want: true},
		{name: "validation field", err: ValidationField("email", "bad"), is: IsValidation, want: true},
		{name: "plain error", err: errors.New("plain"), is: IsNotFound, want: false},
		{name: "nil", err: nil, is: IsConflict, want: false},
		{name: "wrapped", err: fmt.Errorf("ctx: %w", NotFound("gone")), is: IsNotFound, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.is(tt.err); got != tt.want {
				t.Errorf("predicate(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestGetField(t *testing.T) {
	if got := GetField(ValidationField("email", "required")); got != "email" {
		t.Errorf("GetField() = %q, want email", got)
	}
	if got := GetField(errors.New("plain")); got != "" {
		t.Errorf("GetField(plain) = %q, want empty", got)
	}
}
