package middleware

import (
	"net/http"
	"strings"
	"time"

	"HotCams/pkg/context"
	"HotCams/pkg/jwt"
	"HotCams/pkg/response"

	"github.com/gin-gonic/gin"
)

// 剩余有效期小于该值时在响应头下发新 token
const rotateBuffer = 10 * time.Minute

func Auth(secret []byte, expire time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "Invalid authorization header")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TokenTypeAccess, parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		if jwt.ShouldRotate(claims, rotateBuffer) {
			newToken, err := jwt.GenerateToken(secret, claims.UserID, claims.Address, jwt.TokenTypeAccess, expire)
			if err == nil {
				c.Header("X-New-Access-Token", newToken)
			}
		}
		c.Set(context.CtxUserID, claims.UserID)
		c.Set(context.CtxAddress, claims.Address)

		c.Next()
	}
}
