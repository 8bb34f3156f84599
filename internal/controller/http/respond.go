package http

import (
	"errors"
	"net/http"

	"ripple/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondErr translates domain errors into HTTP responses. Lockout
// errors carry the remaining wait so clients can show a countdown.
func respondErr(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		body := gin.H{"error": appErr.Message}
		if appErr.Kind == apperr.Locked {
			body["remaining_minutes"] = appErr.RemainingMinutes
		}
		c.JSON(appErr.Status(), body)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
