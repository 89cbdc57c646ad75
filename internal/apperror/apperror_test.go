package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFound_MatchesSentinel(t *testing.T) {
	err := NotFound("badge", "abc123")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("NotFound should wrap ErrNotFound, got %v", err)
	}
	if err.Message == "" {
		t.Error("NotFound should carry a message")
	}
}

func TestValidationFailed_CarriesField(t *testing.T) {
	err := ValidationFailed("income", "income must be positive")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("ValidationFailed should wrap ErrValidation, got %v", err)
	}
	if err.Field != "income" {
		t.Errorf("Field = %q, want %q", err.Field, "income")
	}
}

func TestUnauthorized_MatchesSentinel(t *testing.T) {
	err := Unauthorized("sign in required")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Unauthorized should wrap ErrUnauthorized, got %v", err)
	}
}

func TestWrapped_SurvivesErrorf(t *testing.T) {
	// Services wrap AppErrors with fmt.Errorf("%w", ...); errors.Is and
	// errors.As must still see through the chain.
	inner := Conflict("poll already submitted")
	outer := fmt.Errorf("submitting poll: %w", inner)

	if !errors.Is(outer, ErrConflict) {
		t.Errorf("wrapped error should match ErrConflict, got %v", outer)
	}

	var appErr *AppError
	if !errors.As(outer, &appErr) {
		t.Fatal("errors.As should extract *AppError from the chain")
	}
	if appErr.Message != "poll already submitted" {
		t.Errorf("Message = %q, want original message", appErr.Message)
	}
}
