package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/mauth/internal/pkg/response"
)

const (
	ContextUserIDKey = "user_id"
	TokenHeader      = "x-auth-token"
	AccessDenied     = "Access denied!"
)

type AccessVerifier interface {
	VerifyAccess(ctx context.Context, token string) (int64, error)
}

func TokenAuth(verifier AccessVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := verifier.VerifyAccess(c.Request.Context(), c.GetHeader(TokenHeader))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, AccessDenied)
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
