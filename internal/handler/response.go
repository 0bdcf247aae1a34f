package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/overcomingroom/bellbell/pkg/errors"
	"github.com/overcomingroom/bellbell/pkg/response"
)

// Respond writes the success envelope for code.
func Respond(c *gin.Context, code response.Code, data interface{}) {
	c.JSON(code.HTTPStatus, code.Envelope(data))
}

// Fail records err for the error handler middleware and stops the chain.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// BindJSON binds the request body into obj. Malformed or invalid input is reported as
// INVALID_INPUT_VALUE and false is returned.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		Fail(c, apperrors.Wrap(apperrors.InvalidInputValue, err))
		return false
	}
	return true
}
