package middleware

import (
	"errors"
	"net/http"
	"strings"

	apperrors "storefront-bff/common/errors"
	"storefront-bff/services"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the context key under which the decoded identity is stored.
const IdentityKey = "identity"

// TokenVerifier abstracts the TokenService for the middleware and tests.
type TokenVerifier interface {
	VerifyAccessToken(tokenStr string) (*services.Identity, error)
}

// Authenticate validates a bearer token and attaches the decoded identity to
// the request context. It is stateless and has no other side effects.
func Authenticate(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "No authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			abortUnauthorized(c, "No token provided")
			return
		}

		identity, err := tokens.VerifyAccessToken(parts[1])
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				abortUnauthorized(c, "Token expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(IdentityKey, *identity)
		c.Next()
	}
}

// GetIdentity retrieves the identity the Authenticate middleware attached.
func GetIdentity(c *gin.Context) (services.Identity, bool) {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return services.Identity{}, false
	}
	identity, ok := val.(services.Identity)
	return identity, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"message": message,
	})
}
