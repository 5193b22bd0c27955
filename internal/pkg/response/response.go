package response

import (
	"github.com/gin-gonic/gin"
)

type messageBody struct {
	Message string `json:"message"`
}

func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, messageBody{Message: message})
}

// Abort writes a message body and stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, messageBody{Message: message})
}
