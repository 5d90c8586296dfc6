package controllers

import (
	"context"
	"net/http"

	"storefront-bff/models"
	"storefront-bff/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthServiceAPI abstracts the auth service for the controller and tests.
type AuthServiceAPI interface {
	Signup(ctx context.Context, input services.SignupInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, *models.User, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

// AuthController handles signup, login and token refresh.
type AuthController struct {
	auth   AuthServiceAPI
	logger *zap.Logger
}

// NewAuthController creates a new AuthController.
func NewAuthController(auth AuthServiceAPI, logger *zap.Logger) *AuthController {
	return &AuthController{auth: auth, logger: logger}
}

type signupRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// sanitizedUser is the user shape returned by auth endpoints. It has no
// password hash field at all, so it cannot leak one.
type sanitizedUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func sanitize(user *models.User) sanitizedUser {
	return sanitizedUser{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Signup registers a new user.
func (ac *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Username, email and password are required",
		})
		return
	}

	user, err := ac.auth.Signup(c.Request.Context(), services.SignupInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		ac.logger.Warn("Signup failed", zap.String("email", req.Email), zap.Error(err))
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "User created successfully", sanitize(user))
}

// Login authenticates a user and returns a token pair.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Email and password are required",
		})
		return
	}

	pair, user, err := ac.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Login successful", gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"user":         sanitize(user),
	})
}

// RefreshToken exchanges a valid refresh token for a new pair.
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Refresh token is required",
		})
		return
	}

	pair, err := ac.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Token refreshed successfully", pair)
}
