package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/mauth/internal/middleware"
)

type RouterDeps struct {
	Auth     *AuthHandler
	Verifier middleware.AccessVerifier
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.GET("/", Welcome)
	api.POST("/user/sign-up", deps.Auth.SignUp)
	api.POST("/user/sign-in", deps.Auth.SignIn)
	api.GET("/protected", middleware.TokenAuth(deps.Verifier), Protected)
}
