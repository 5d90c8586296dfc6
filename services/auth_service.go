package services

import (
	"context"
	"errors"
	"net/http"

	apperrors "storefront-bff/common/errors"
	"storefront-bff/models"
	"storefront-bff/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenIssuer abstracts the TokenService for controllers and tests.
type TokenIssuer interface {
	GenerateTokenPair(identity Identity) (*TokenPair, error)
	VerifyRefreshToken(tokenStr string) (*Identity, error)
}

// SignupInput carries validated signup fields.
type SignupInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService handles signup, login and token refresh.
type AuthService struct {
	users  repository.UserRepository
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Signup creates a new user with a bcrypt password hash. Username and email
// must both be unused.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	_, err := s.users.FindByUsernameOrEmail(ctx, input.Username, input.Email)
	if err == nil {
		return nil, apperrors.ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to check existing user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to hash password", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to create user", err)
	}

	return user, nil
}

// Login verifies credentials and issues a token pair. The same error is
// returned whether the email is unknown or the password is wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.tokens.GenerateTokenPair(Identity{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return nil, nil, apperrors.New(http.StatusInternalServerError, "Failed to generate tokens", err)
	}

	return pair, user, nil
}

// Refresh verifies a refresh token, confirms the user still exists, and
// issues a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	identity, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(identity.ID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	pair, err := s.tokens.GenerateTokenPair(Identity{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to generate tokens", err)
	}

	return pair, nil
}
