package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestConstructorCodeAndStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"validation", NewValidationError("bad input", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("nope"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", NewForbidden("nope"), "FORBIDDEN", http.StatusForbidden},
		{"not found", NewNotFound("agent", nil), "NOT_FOUND", http.StatusNotFound},
		{"conflict", NewConflict("dup", nil), "CONFLICT", http.StatusConflict},
		{"internal", NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			derr := ToDomainError(tc.err)
			if derr.Code != tc.code {
				t.Errorf("code = %q, want %q", derr.Code, tc.code)
			}
			if derr.HTTPStatus != tc.status {
				t.Errorf("status = %d, want %d", derr.HTTPStatus, tc.status)
			}
		})
	}
}

func TestToDomainErrorMapsMissingRows(t *testing.T) {
	derr := ToDomainError(fmt.Errorf("load agent: %w", pgx.ErrNoRows))
	if derr.Code != "NOT_FOUND" || derr.HTTPStatus != http.StatusNotFound {
		t.Errorf("got %s/%d, want NOT_FOUND/404", derr.Code, derr.HTTPStatus)
	}
}

func TestToDomainErrorMapsUniqueViolations(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "companies_registration_number_key"}
	derr := ToDomainError(fmt.Errorf("insert company: %w", dup))
	if derr.Code != "CONFLICT" || derr.HTTPStatus != http.StatusConflict {
		t.Errorf("got %s/%d, want CONFLICT/409", derr.Code, derr.HTTPStatus)
	}

	other := &pgconn.PgError{Code: "23503"}
	if derr := ToDomainError(other); derr.Code != "INTERNAL_ERROR" {
		t.Errorf("non-duplicate integrity violation code = %q, want INTERNAL_ERROR", derr.Code)
	}
}

func TestToDomainErrorWrapsUnknownErrors(t *testing.T) {
	derr := ToDomainError(errors.New("disk on fire"))
	if derr.Code != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", derr.Code)
	}
	if derr.Message == "disk on fire" {
		t.Error("internal error must not echo the underlying cause")
	}
	if derr.Err == nil {
		t.Error("cause must be preserved for logging")
	}
}

func TestNotFoundMessageNamesResource(t *testing.T) {
	derr := ToDomainError(NewNotFound("company", nil))
	if derr.Message != "company not found" {
		t.Errorf("message = %q", derr.Message)
	}
}
