package memory

import (
	"context"
	"time"

	"github.com/SkShizan/clg-project/internal/domain/auth"
)

type refreshToken struct {
	accountID string
	expiresAt time.Time
	revokedAt *time.Time
}

type refreshTokenRepository struct {
	s *Store
}

func NewRefreshTokenRepository(s *Store) auth.RefreshTokenRepository {
	return &refreshTokenRepository{s: s}
}

func (r *refreshTokenRepository) Create(ctx context.Context, accountID, token string, expiresAt time.Time) error {
	err := r.s.begin("refreshToken.Create")
	defer r.s.mu.Unlock()
	if err != nil {
		return err
	}

	r.s.data.refreshTokens[token] = refreshToken{accountID: accountID, expiresAt: expiresAt}
	return nil
}

func (r *refreshTokenRepository) IsRevoked(ctx context.Context, token string) (string, bool, error) {
	err := r.s.begin("refreshToken.IsRevoked")
	defer r.s.mu.Unlock()
	if err != nil {
		return "", false, err
	}

	t, ok := r.s.data.refreshTokens[token]
	if !ok {
		return "", false, auth.ErrInvalidToken
	}
	return t.accountID, t.revokedAt != nil || !t.expiresAt.After(time.Now()), nil
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	err := r.s.begin("refreshToken.Revoke")
	defer r.s.mu.Unlock()
	if err != nil {
		return err
	}

	t, ok := r.s.data.refreshTokens[token]
	if !ok {
		return auth.ErrInvalidToken
	}
	if t.revokedAt == nil {
		now := r.s.tick()
		t.revokedAt = &now
		r.s.data.refreshTokens[token] = t
	}
	return nil
}

func (r *refreshTokenRepository) RevokeAllForAccount(ctx context.Context, accountID string) error {
	err := r.s.begin("refreshToken.RevokeAllForAccount")
	defer r.s.mu.Unlock()
	if err != nil {
		return err
	}

	now := r.s.tick()
	for token, t := range r.s.data.refreshTokens {
		if t.accountID == accountID && t.revokedAt == nil {
			t.revokedAt = &now
			r.s.data.refreshTokens[token] = t
		}
	}
	return nil
}
