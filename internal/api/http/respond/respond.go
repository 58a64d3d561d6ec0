// Package respond renders the JSON envelope shared by every API handler.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rdboard/rd-tracker-backend/internal/logger"
	"github.com/rdboard/rd-tracker-backend/internal/validation"
)

func OK(c *gin.Context, status int, key string, v any) {
	c.JSON(status, gin.H{"ok": true, key: v})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}

// Error maps err to a response. Validation errors carry their field messages;
// anything not handled by the caller is logged and reported generically.
func Error(c *gin.Context, log *zap.Logger, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "validation failed", "fields": vErr.Fields})
		return
	}

	logger.FromContext(c.Request.Context(), log).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "something went wrong, please try again"})
}
