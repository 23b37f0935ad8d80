package handler

import (
	"HotCams/config"
	"HotCams/middleware"
	"HotCams/types"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func authorize(conf *config.Config) gin.HandlerFunc {
	return middleware.Auth([]byte(conf.Jwt.Secret), time.Duration(conf.Jwt.ExpiresIn)*time.Second)
}

// paramID 解析路径中的数字 ID
func paramID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, types.ErrInvalidID
	}
	return id, nil
}
