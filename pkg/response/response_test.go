package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/engine"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/repository"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/internal/service"
	"github.com/Jnpaul1984/Cricksy-Scorer-sub001/pkg/response"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"no error", nil, http.StatusOK, "ok"},
		{"bad command", fmt.Errorf("%w: seven off the bat", engine.ErrValidation), http.StatusBadRequest, "invalid_command"},
		{"state conflict", fmt.Errorf("%w: innings not live", engine.ErrConflict), http.StatusConflict, "conflict"},
		{"missing match", repository.ErrNotFound, http.StatusNotFound, "not_found"},
		{"duplicate", repository.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{"version race", repository.ErrConflict, http.StatusConflict, "conflict"},
		{"broken invariant", fmt.Errorf("%w: no first innings", engine.ErrInvariant), http.StatusInternalServerError, "internal_error"},
		{"anything else", errors.New("pg: pool exhausted"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := response.MapError(tc.err)
			if status != tc.wantStatus {
				t.Fatalf("status = %d, want %d", status, tc.wantStatus)
			}
			if payload.Error != tc.wantError {
				t.Fatalf("error = %q, want %q", payload.Error, tc.wantError)
			}
		})
	}
}

func TestMapError_RuleTextReachesTheScorer(t *testing.T) {
	_, payload := response.MapError(fmt.Errorf("%w: batter 7 is already out", engine.ErrValidation))
	if payload.Message != "invalid command: batter 7 is already out" {
		t.Fatalf("message = %q", payload.Message)
	}
}

func TestMapError_FieldErrorsCarried(t *testing.T) {
	err := service.NewInvalidInputError([]service.FieldError{
		{Field: "overs_limit", Message: "must be between 1 and 50"},
		{Field: "team_a.name", Message: "must not be empty"},
	})

	status, payload := response.MapError(err)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if payload.Error != "invalid_input" {
		t.Fatalf("error = %q", payload.Error)
	}
	if len(payload.FieldErrors) != 2 || payload.FieldErrors[0].Field != "overs_limit" {
		t.Fatalf("field errors = %+v", payload.FieldErrors)
	}
}
