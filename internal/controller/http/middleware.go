package http

import (
	"net/http"
	"time"

	"ripple/internal/apperr"
	"ripple/internal/entity"
	"ripple/internal/usecase"
	"ripple/pkg/middleware"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

// Route permissions are data, not conditionals: an action is allowed
// for exactly the roles listed here.
var permissions = map[string][]entity.Role{
	"users:manage": {entity.RoleAdmin},
	"users:delete": {entity.RoleAdmin, entity.RoleModerator},
}

// CurrentUser turns the verified token claims into a live user record.
// It rejects tokens whose subject is gone (or deactivated) and tokens
// issued before the last password change.
func CurrentUser(authUseCase usecase.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.UserIDKey)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in, please login first"})
			c.Abort()
			return
		}

		issuedAt, _ := c.Get(middleware.TokenIatKey)
		iat, ok := issuedAt.(time.Time)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		user, err := authUseCase.CurrentUser(userID, iat)
		if err != nil {
			respondErr(c, err)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequirePermission gates a route on the permission table. It runs
// after CurrentUser, so the role comes from the live record rather than
// the token, and a role change takes effect immediately.
func RequirePermission(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := mustCurrentUser(c)
		if user == nil {
			return
		}

		for _, role := range permissions[action] {
			if user.Role == role {
				c.Next()
				return
			}
		}

		respondErr(c, apperr.New(apperr.Forbidden, "you do not have permission to perform this action"))
		c.Abort()
	}
}

// mustCurrentUser fetches the record stashed by CurrentUser, aborting
// with 401 when the middleware did not run.
func mustCurrentUser(c *gin.Context) *entity.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you are not logged in, please login first"})
		c.Abort()
		return nil
	}
	return value.(*entity.User)
}
