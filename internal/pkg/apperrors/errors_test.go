package apperrors

import (
	"errors"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "With Code",
			appError: &AppError{
				Code:    "TEST_CODE",
				Message: "This is a test error",
			},
			expected: "[TEST_CODE] This is a test error",
		},
		{
			name: "Without Code",
			appError: &AppError{
				Message: "This is a test error without code",
			},
			expected: "This is a test error without code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestValidationErrorsUnwrap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "firstName", Message: "must not be empty"},
		{Field: "email", Message: "must not be empty"},
	}

	if !errors.Is(errs, ErrValidation) {
		t.Errorf("expected ValidationErrors to match ErrValidation")
	}

	expected := "validation failed for field 'firstName': must not be empty; " +
		"validation failed for field 'email': must not be empty"
	if errs.Error() != expected {
		t.Errorf("expected %q, got %q", expected, errs.Error())
	}
}

func TestNewValidationErrorMatchesSentinel(t *testing.T) {
	err := NewValidationError("cpf", "must not be empty")

	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected error to match ErrValidation")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected error to unwrap to *ValidationError")
	}
	if ve.Field != "cpf" {
		t.Errorf("expected field 'cpf', got %q", ve.Field)
	}
}
