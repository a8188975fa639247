// Package middleware provides the gin middleware shared by all routes:
// identity extraction, request logging, and request metrics.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ankadev/tripnest/internal/auth"
)

// userIDKey is the gin context key for the authenticated user id.
const userIDKey = "tripnest.user_id"

// Identity validates the bearer token on every request and places the
// authenticated user id in the request context. Requests without a valid
// token are rejected with 401 before reaching any handler.
func Identity(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		claims, err := verifier.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// UserID extracts the authenticated user id from the context.
// Returns empty string if not found.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
