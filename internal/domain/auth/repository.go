package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository persists issued refresh tokens so they can be
// revoked before they expire. Implementations store a hash, never the token.
type RefreshTokenRepository interface {
	Create(ctx context.Context, accountID, token string, expiresAt time.Time) error
	// IsRevoked reports the owning account and whether the token was revoked
	// or has expired. Unknown tokens return ErrInvalidToken.
	IsRevoked(ctx context.Context, token string) (accountID string, revoked bool, err error)
	// Revoke is idempotent for known tokens. Unknown tokens return
	// ErrInvalidToken.
	Revoke(ctx context.Context, token string) error
	RevokeAllForAccount(ctx context.Context, accountID string) error
}
