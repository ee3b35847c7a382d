package domain

import "context"

// VerificationCache stores short-lived email verification tokens keyed by user
// ID. Written by the register-verification handler, read back when the user
// follows the confirmation link.
type VerificationCache interface {
	SetToken(ctx context.Context, userID, token string) error
	GetToken(ctx context.Context, userID string) (string, error)
	DeleteToken(ctx context.Context, userID string) error
}
