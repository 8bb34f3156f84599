package middleware

import (
	"net/http"
	"strings"

	"ripple/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
	TokenIatKey = "token_iat"
)

// AuthMiddleware verifies the bearer token and stashes the subject,
// role and issue time in the request context. It does not hit the
// database; handlers that need the live user record load it themselves.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in, please login first"})
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserRoleKey, claims.Role)
		if claims.IssuedAt != nil {
			c.Set(TokenIatKey, claims.IssuedAt.Time)
		}
		c.Next()
	}
}
