package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SkShizan/clg-project/internal/domain/account"
	"github.com/SkShizan/clg-project/internal/domain/auth"
	"github.com/SkShizan/clg-project/internal/domain/employee"
	"github.com/SkShizan/clg-project/internal/pkg/jwt"
	"github.com/SkShizan/clg-project/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	account.AccountRepository
	employee.EmployeeRepository
	auth.RefreshTokenRepository
	jwt.Service
}

func NewAuthService(
	accountRepository account.AccountRepository,
	employeeRepository employee.EmployeeRepository,
	refreshTokenRepository auth.RefreshTokenRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		AccountRepository:      accountRepository,
		EmployeeRepository:     employeeRepository,
		RefreshTokenRepository: refreshTokenRepository,
		Service:                jwtService,
	}
}

// HashPassword bcrypt-hashes a plain password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Authenticate implements auth.AuthService.
func (a *AuthServiceImpl) Authenticate(ctx context.Context, username, password string) (account.Account, error) {
	acc, err := a.AccountRepository.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return account.Account{}, auth.ErrInvalidCredentials
		}
		return account.Account{}, fmt.Errorf("failed to get account by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return account.Account{}, auth.ErrInvalidCredentials
	}

	return acc, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	acc, err := a.Authenticate(ctx, loginReq.Username, loginReq.Password)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	employeeID, err := a.employeeIDFor(ctx, acc.ID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(acc.ID, employeeID, acc.IsStaff)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.Service.GenerateRefreshToken(acc.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}
	if err := a.RefreshTokenRepository.Create(ctx, acc.ID, refreshToken, time.Unix(refreshExpiresAt, 0)); err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken:           token,
		TokenType:             "Bearer",
		ExpiresAt:             expiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
		AccountID:             acc.ID,
		EmployeeID:            employeeID,
		IsStaff:               acc.IsStaff,
	}, nil
}

// employeeIDFor returns nil for accounts without a profile, which staff
// accounts may be.
func (a *AuthServiceImpl) employeeIDFor(ctx context.Context, accountID string) (*string, error) {
	emp, err := a.EmployeeRepository.GetByAccountID(ctx, accountID)
	switch {
	case err == nil:
		return &emp.ID, nil
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("failed to get employee profile: %w", err)
	}
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	// 1. Verify signature and expiry
	token, err := jwtauth.VerifyToken(a.JWTAuth(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return auth.AccessTokenResponse{}, auth.ErrTokenExpired
		}
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 2. Only refresh tokens are accepted here
	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 3. Revocation and expiry as recorded at issue time
	accountID, revoked, err := a.RefreshTokenRepository.IsRevoked(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return auth.AccessTokenResponse{}, err
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	// 4. Re-read the account so staff flag and profile link are current
	acc, err := a.AccountRepository.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get account: %w", err)
	}
	employeeID, err := a.employeeIDFor(ctx, acc.ID)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	accessToken, expiresAt, err := a.Service.GenerateAccessToken(acc.ID, employeeID, acc.IsStaff)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, req auth.RefreshTokenRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return a.RefreshTokenRepository.Revoke(ctx, req.RefreshToken)
}

// CreateAccount implements auth.AuthService.
func (a *AuthServiceImpl) CreateAccount(ctx context.Context, req auth.CreateAccountRequest) (account.Account, error) {
	if err := req.Validate(); err != nil {
		return account.Account{}, err
	}

	taken, err := a.UsernameTaken(ctx, req.Username, nil)
	if err != nil {
		return account.Account{}, err
	}
	if taken {
		return account.Account{}, usernameTakenError()
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return account.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.AccountRepository.Create(ctx, account.Account{
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsStaff:      req.IsStaff,
	})
	if err != nil {
		if errors.Is(err, account.ErrUsernameExists) {
			return account.Account{}, usernameTakenError()
		}
		return account.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return created, nil
}

// SetPassword implements auth.AuthService. It also revokes every refresh
// token of the account.
func (a *AuthServiceImpl) SetPassword(ctx context.Context, accountID, password string) error {
	if validator.IsEmpty(password) {
		return validator.Single("password", "password is required")
	}
	if len(password) > 72 {
		return validator.Single("password", "password must not exceed 72 bytes")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.AccountRepository.UpdatePassword(ctx, accountID, hash); err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}

	// Sessions opened with the old password end here.
	if err := a.RefreshTokenRepository.RevokeAllForAccount(ctx, accountID); err != nil {
		return err
	}
	return nil
}

// UsernameTaken implements auth.AuthService.
func (a *AuthServiceImpl) UsernameTaken(ctx context.Context, username string, excludeAccountID *string) (bool, error) {
	taken, err := a.AccountRepository.ExistsByUsername(ctx, username, excludeAccountID)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return taken, nil
}

func usernameTakenError() error {
	return validator.Single("username", "A user with this username already exists.")
}
