package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("underlying")

	testCases := []struct {
		name     string
		err      *Error
		wantKind Kind
		wantMsg  string
		wantErr  error
	}{
		{"NotFound", NotFound("race not found"), ErrNotFound, "race not found", nil},
		{"NotFoundf", NotFoundf("race %d not found", 7), ErrNotFound, "race 7 not found", nil},
		{"Validation", Validation("team name is required"), ErrValidation, "team name is required", nil},
		{"Validationf", Validationf("group %d is out of range", 9), ErrValidation, "group 9 is out of range", nil},
		{"Conflict", Conflict("picks are locked"), ErrConflict, "picks are locked", nil},
		{"Conflictf", Conflictf("race %d is archived", 3), ErrConflict, "race 3 is archived", nil},
		{"InvalidInput", InvalidInput("missing race_id"), ErrInvalidInput, "missing race_id", nil},
		{"InvalidInputf", InvalidInputf("bad value %q", "x"), ErrInvalidInput, `bad value "x"`, nil},
		{"Internal", Internal(cause), ErrInternal, "internal error", cause},
		{"Internalf", Internalf("sweep failed after %d races", 2), ErrInternal, "sweep failed after 2 races", nil},
		{"Wrap", Wrap(cause, ErrConflict, "results already posted"), ErrConflict, "results already posted", cause},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Kind != tc.wantKind {
				t.Errorf("Kind = %v, want %v", tc.err.Kind, tc.wantKind)
			}
			if tc.err.Message != tc.wantMsg {
				t.Errorf("Message = %q, want %q", tc.err.Message, tc.wantMsg)
			}
			if tc.err.Err != tc.wantErr {
				t.Errorf("Err = %v, want %v", tc.err.Err, tc.wantErr)
			}
		})
	}
}

func TestError_MessageOnly(t *testing.T) {
	err := NotFound("participant not found")
	if got := err.Error(); got != "participant not found" {
		t.Errorf("Error() = %q, want message only", got)
	}
}

func TestError_IncludesCause(t *testing.T) {
	cause := fmt.Errorf("sql: database is closed")
	err := Wrap(cause, ErrInternal, "loading standings")
	want := "loading standings: sql: database is closed"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("original")
	if got := Wrap(cause, ErrInternal, "ctx").Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
	if got := NotFound("x").Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestErrorsAs_ThroughWrapping(t *testing.T) {
	inner := Validation("average speed must be positive")
	wrapped := fmt.Errorf("submit pick: %w", inner)

	var appErr *Error
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As failed to find *Error in chain")
	}
	if appErr.Kind != ErrValidation {
		t.Errorf("Kind = %v, want ErrValidation", appErr.Kind)
	}
}

func TestErrorsAs_PlainError(t *testing.T) {
	var appErr *Error
	if errors.As(fmt.Errorf("plain"), &appErr) {
		t.Error("errors.As matched a plain error")
	}
}

func TestErrorsIs_FindsCauseInChain(t *testing.T) {
	sentinel := fmt.Errorf("sentinel")
	chain := fmt.Errorf("outer: %w", Wrap(fmt.Errorf("mid: %w", sentinel), ErrInternal, "inner"))
	if !errors.Is(chain, sentinel) {
		t.Error("errors.Is failed to find cause through the chain")
	}
}

func TestKindString(t *testing.T) {
	testCases := []struct {
		kind Kind
		want string
	}{
		{ErrInternal, "internal"},
		{ErrNotFound, "not found"},
		{ErrValidation, "validation"},
		{ErrConflict, "conflict"},
		{ErrInvalidInput, "invalid input"},
		{Kind(99), "internal"},
	}
	for _, tc := range testCases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestInternal_NilCause(t *testing.T) {
	err := Internal(nil)
	if err.Error() != "internal error" {
		t.Errorf("Error() = %q, want generic message", err.Error())
	}
	if err.Unwrap() != nil {
		t.Error("Unwrap() should be nil")
	}
}
