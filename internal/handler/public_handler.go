package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	appErr "github.com/xxxsen/mauth/internal/pkg/errors"
	"github.com/xxxsen/mauth/internal/pkg/response"
)

var errMissingIdentity = fmt.Errorf("%w: no user in request context", appErr.ErrAccessDenied)

func Welcome(c *gin.Context) {
	response.Message(c, http.StatusOK, "Welcome to MigraCode Auth application.")
}

// Protected runs behind middleware.TokenAuth.
func Protected(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		handleError(c, errMissingIdentity, "")
		return
	}
	response.Message(c, http.StatusOK, "You reached a protected endpoint!")
}
