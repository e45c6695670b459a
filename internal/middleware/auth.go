package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"moviecatalog/internal/auth"
)

const subjectContextKey = "subject"

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// SubjectFromContext returns the authenticated email, or "" when the request
// did not pass AuthMiddleware.
func SubjectFromContext(c *gin.Context) string {
	return c.GetString(subjectContextKey)
}

// AuthMiddleware rejects requests without a valid "Bearer <token>" header.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authorization header is required",
			})
			return
		}

		tokenParts := strings.Fields(authHeader)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authorization header must be in the format 'Bearer {token}'",
			})
			return
		}

		claims, err := tokens.Validate(tokenParts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid token",
			})
			return
		}

		c.Set(subjectContextKey, claims.Subject)
		c.Next()
	}
}
