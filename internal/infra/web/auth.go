package web

import (
	"errors"
	"time"

	"account-pool-service/internal/config"
	"account-pool-service/internal/domain/model"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// UserClaims is the session token payload.
type UserClaims struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	jwt.RegisteredClaims
}

// TokenManager mints and verifies HS256 session tokens. The secret lives in
// the injected config, never in package state.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(cfg *config.AuthConfig) *TokenManager {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(cfg.JWTSecret), ttl: ttl}
}

func (m *TokenManager) Mint(u *model.User) (string, error) {
	now := time.Now()
	claims := UserClaims{
		UID:      u.ID,
		Email:    u.Email,
		Username: u.Username,
		Level:    u.Level,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies a token, keeping expiry distinct from every other failure
// so clients can prompt for re-login instead of showing a generic error.
func (m *TokenManager) Parse(tok string) (*UserClaims, error) {
	claims := &UserClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
