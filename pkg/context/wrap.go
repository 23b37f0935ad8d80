package context

import (
	"HotCams/pkg/log"
	"HotCams/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID  = "user_id"
	CtxAddress = "address"
)

type HandlerFunc func(*gin.Context) error

// Wrap 统一错误出口：业务错误按自身状态码返回，其它错误只返回通用文案
func Wrap(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {
			if c.Writer.Written() {
				return
			}
			var be *response.BizError
			if errors.As(err, &be) {
				status := be.Code
				if status < 400 || status > 599 {
					status = http.StatusBadRequest
				}
				response.Fail(c, status, be.Msg)
				return
			}
			log.L.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			response.Fail(c, http.StatusInternalServerError, response.InternalErrorMsg)
		}
	}
}

func GetUserID(c *gin.Context) (uint64, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, errors.New("user_id not found")
	}

	uid, ok := v.(uint64)
	if !ok {
		return 0, errors.New("user_id type mismatch")
	}

	return uid, nil
}
