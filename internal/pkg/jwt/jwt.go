package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrMissingClaims = errors.New("token is missing required claims")

type Service interface {
	GenerateAccessToken(accountID string, employeeID *string, isStaff bool) (token string, expiresAt int64, err error)
	GenerateRefreshToken(accountID string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                  string
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	tokenAuth                  *jwtauth.JWTAuth
	now                        func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                  secretKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                        time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(accountID string, employeeID *string, isStaff bool) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	issuedAt := j.now()
	expiresAt = issuedAt.Add(expDuration).Unix()

	claims := map[string]interface{}{
		"account_id":  accountID,
		"employee_id": returnValueOrNil(employeeID),
		"is_staff":    isStaff,
		"type":        "access",
		"iat":         issuedAt.Unix(),
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// GenerateRefreshToken issues a token that only the refresh endpoint accepts.
// The jti keeps two tokens issued in the same second distinct.
func (j *JWTService) GenerateRefreshToken(accountID string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.refreshTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	issuedAt := j.now()
	expiresAt = issuedAt.Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"account_id": accountID,
		"jti":        uuid.Must(uuid.NewV7()).String(),
		"type":       "refresh",
		"iat":        issuedAt.Unix(),
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}

func returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

// Claims is the identity carried by a verified access token.
type Claims struct {
	AccountID  string
	EmployeeID *string
	IsStaff    bool
}

// ClaimsFromContext reads the claims jwtauth.Verifier stored in ctx.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, err
	}

	accountID, ok := raw["account_id"].(string)
	if !ok || accountID == "" {
		return Claims{}, ErrMissingClaims
	}

	claims := Claims{AccountID: accountID}
	if employeeID, ok := raw["employee_id"].(string); ok && employeeID != "" {
		claims.EmployeeID = &employeeID
	}
	claims.IsStaff, _ = raw["is_staff"].(bool)

	return claims, nil
}
