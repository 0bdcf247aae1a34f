package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/overcomingroom/bellbell/pkg/errors"
)

const (
	HeaderAuthorization = "Authorization"
	ContextAccessToken  = "access_token"

	// The credential starts after "Bearer ". The scheme itself is not checked.
	bearerPrefixLen = len("Bearer ")
)

// Authenticate extracts the access token from the Authorization header. Resolving the
// token to a member is left to the services, so an unknown token surfaces as
// MEMBER_NOT_FOUND rather than an authentication failure.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(HeaderAuthorization)
		if len(header) <= bearerPrefixLen {
			abortWithError(c, apperrors.New(apperrors.JWTValueIsEmpty))
			return
		}

		token := strings.TrimSpace(header[bearerPrefixLen:])
		if token == "" {
			abortWithError(c, apperrors.New(apperrors.JWTValueIsEmpty))
			return
		}

		c.Set(ContextAccessToken, token)
		c.Next()
	}
}

// AccessToken returns the token stored by Authenticate.
func AccessToken(c *gin.Context) string {
	return c.GetString(ContextAccessToken)
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
