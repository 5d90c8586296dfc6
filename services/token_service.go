package services

import (
	"errors"
	"fmt"
	"time"

	apperrors "storefront-bff/common/errors"

	"github.com/golang-jwt/jwt/v4"
)

// Identity is the triple carried in every token payload.
type Identity struct {
	ID       string
	Username string
	Email    string
}

// TokenPair holds the generated access and refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService creates and validates JWTs. Access and refresh tokens are
// signed with distinct secrets and carry independently configured expiries.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a TokenService. Both signing secrets are required;
// the process must not start without them.
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("JWT signing secrets are not configured")
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// GenerateTokenPair creates a new access and refresh token pair carrying the
// identity triple.
func (s *TokenService) GenerateTokenPair(identity Identity) (*TokenPair, error) {
	accessToken, err := signToken(identity, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := signToken(identity, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// VerifyAccessToken validates an access token and returns the identity it
// carries. Expired tokens are distinguished from otherwise invalid ones.
func (s *TokenService) VerifyAccessToken(tokenStr string) (*Identity, error) {
	return verifyToken(tokenStr, s.accessSecret)
}

// VerifyRefreshToken validates a refresh token and returns the identity it
// carries.
func (s *TokenService) VerifyRefreshToken(tokenStr string) (*Identity, error) {
	return verifyToken(tokenStr, s.refreshSecret)
}

func signToken(identity Identity, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       identity.ID,
		"username": identity.Username,
		"email":    identity.Email,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verifyToken(tokenStr string, secret []byte) (*Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	identity := &Identity{}
	if identity.ID, ok = claims["id"].(string); !ok {
		return nil, apperrors.ErrInvalidToken
	}
	identity.Username, _ = claims["username"].(string)
	identity.Email, _ = claims["email"].(string)
	return identity, nil
}
