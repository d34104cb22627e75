package auth

import (
	"context"

	"github.com/SkShizan/clg-project/internal/domain/account"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, req RefreshTokenRequest) error
	Authenticate(ctx context.Context, username, password string) (account.Account, error)
	CreateAccount(ctx context.Context, req CreateAccountRequest) (account.Account, error)
	SetPassword(ctx context.Context, accountID, password string) error
	UsernameTaken(ctx context.Context, username string, excludeAccountID *string) (bool, error)
}
