package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/mbrandall/survivor-pool/internal/usecase"
)

func TestStaticVerifier_AcceptsMatchingToken(t *testing.T) {
	verifier := NewStaticVerifier("secret-token")

	if err := verifier.VerifyAdminToken(context.Background(), "secret-token"); err != nil {
		t.Fatalf("verify matching token: %v", err)
	}
}

func TestStaticVerifier_RejectsMismatch(t *testing.T) {
	verifier := NewStaticVerifier("secret-token")

	err := verifier.VerifyAdminToken(context.Background(), "wrong-token")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestStaticVerifier_RejectsWhenUnconfigured(t *testing.T) {
	verifier := NewStaticVerifier("")

	err := verifier.VerifyAdminToken(context.Background(), "")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unconfigured token, got %v", err)
	}
}
