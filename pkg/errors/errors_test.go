package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without wrapped error",
			err:  New(ErrCodeValidation, "bad course model"),
			want: "[E1001] bad course model",
		},
		{
			name: "with wrapped error",
			err:  Wrap(ErrCodeArchiveWrite, "write failed", fmt.Errorf("disk full")),
			want: "[E4002] write failed: disk full",
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

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner")
	err := Wrap(ErrCodeInternal, "outer", inner)
	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnsupportedVersion, http.StatusBadRequest},
		{ErrCodeInvalidPath, http.StatusBadRequest},
		{ErrCodeNoContent, http.StatusBadRequest},
		{ErrCodeValidationFailed, http.StatusUnprocessableEntity},
		{ErrCodeArchiveWrite, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := New(tt.code, "msg").HTTPStatus(); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestConstructors(t *testing.T) {
	if ErrUnsupportedVersion("9.9").Code != ErrCodeUnsupportedVersion {
		t.Error("ErrUnsupportedVersion should use the unsupported version code")
	}
	if ErrInvalidPath("../evil").Code != ErrCodeInvalidPath {
		t.Error("ErrInvalidPath should use the invalid path code")
	}
	if ErrNoContent().Code != ErrCodeNoContent {
		t.Error("ErrNoContent should use the no content code")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := ErrValidation("nope")
	got, ok := AsAppError(appErr)
	if !ok || got != appErr {
		t.Error("AsAppError should return the original AppError")
	}

	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("AsAppError should reject non-AppError values")
	}
}
