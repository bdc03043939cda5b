package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mstanchev/vaxtrack/internal/middleware"
	"github.com/mstanchev/vaxtrack/internal/pkg/errcode"
	appErr "github.com/mstanchev/vaxtrack/internal/pkg/errors"
	"github.com/mstanchev/vaxtrack/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}

// handleError maps service errors to the API error envelope.
// Validation messages pass through verbatim; everything else collapses
// to a generic message for its class.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Warn("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("user_id", getUserID(c)),
		zap.Error(err),
	)
	if ve, ok := appErr.AsValidation(err); ok {
		response.Error(c, errcode.ErrInvalid, ve.Message)
		return
	}
	switch {
	case err == appErr.ErrUnauthorized:
		response.Error(c, errcode.ErrUnauthorized, "unauthorized")
	case err == appErr.ErrNotFound:
		response.Error(c, errcode.ErrNotFound, "not found")
	case err == appErr.ErrConflict:
		response.Error(c, errcode.ErrConflict, "conflict")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
