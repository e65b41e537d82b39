package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_MessageAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := ErrDBUnavailable(cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "db_unavailable") {
		t.Fatalf("expected code in error string, got %q", err.Error())
	}
}

func TestIs_MatchesByCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("handler: %w", ErrEmailAlreadyExists())
	if !Is(err, "email_already_exists") {
		t.Fatalf("expected Is to match wrapped domain code")
	}
	if Is(err, "user_not_found") {
		t.Fatalf("expected Is to reject other codes")
	}
	if Is(errors.New("plain"), "email_already_exists") {
		t.Fatalf("expected Is to reject non-domain errors")
	}
}

func TestErrAccountStillLocked_CarriesRemainingSeconds(t *testing.T) {
	t.Parallel()

	err := ErrAccountStillLocked(172)
	if !strings.Contains(err.Message, "172 seconds") {
		t.Fatalf("expected remaining seconds in message, got %q", err.Message)
	}
	if err.Kind != KindLocked {
		t.Fatalf("expected KindLocked, got %s", err.Kind)
	}
}
