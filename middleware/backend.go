package middleware

import (
	"net/http"

	"HotCams/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireDatabase 没有数据库的部署下，依赖数据库的接口统一返回 503
func RequireDatabase(available bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !available {
			response.Abort(c, http.StatusServiceUnavailable, "Not available in mock mode")
			return
		}
		c.Next()
	}
}
