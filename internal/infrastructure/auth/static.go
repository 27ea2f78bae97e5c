// Package auth verifies admin tokens for the management API.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/mbrandall/survivor-pool/internal/usecase"
)

// StaticVerifier checks presented tokens against one configured secret.
type StaticVerifier struct {
	token string
}

func NewStaticVerifier(token string) *StaticVerifier {
	return &StaticVerifier{token: token}
}

func (v *StaticVerifier) VerifyAdminToken(_ context.Context, token string) error {
	if v.token == "" {
		return fmt.Errorf("%w: admin token is not configured", usecase.ErrUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(v.token)) != 1 {
		return fmt.Errorf("%w: invalid admin token", usecase.ErrUnauthorized)
	}
	return nil
}
