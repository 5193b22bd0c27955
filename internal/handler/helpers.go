package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/mauth/internal/middleware"
	appErr "github.com/xxxsen/mauth/internal/pkg/errors"
	"github.com/xxxsen/mauth/internal/pkg/response"
)

func getUserID(c *gin.Context) (int64, bool) {
	value, ok := c.Get(middleware.ContextUserIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := value.(int64)
	return userID, ok
}

// handleError maps workflow errors onto the client contract. email is
// echoed in the conflict and not-found messages.
func handleError(c *gin.Context, err error, email string) {
	if err == nil {
		return
	}
	requestID, _ := c.Get(middleware.ContextRequestIDKey)
	logger := logutil.GetLogger(c.Request.Context()).With(
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
	switch {
	case appErr.IsConflict(err):
		logger.Info("request rejected", zap.Error(err))
		response.Message(c, http.StatusBadRequest, "User with email:"+email+" already exist!")
	case appErr.IsNotFound(err):
		logger.Info("request rejected", zap.Error(err))
		response.Message(c, http.StatusBadRequest, "User with email:"+email+" does not exist!")
	case appErr.IsInvalidCredentials(err):
		logger.Info("request rejected", zap.Error(err))
		response.Message(c, http.StatusBadRequest, "Invalid Password!")
	case appErr.IsAccessDenied(err):
		logger.Info("request rejected", zap.Error(err))
		response.Message(c, http.StatusUnauthorized, middleware.AccessDenied)
	default:
		logger.Error("request failed", zap.Error(err))
		response.Message(c, http.StatusInternalServerError, "internal error")
	}
}
