package handler

import (
	"HotCams/pkg/context"
	"HotCams/pkg/response"
	"HotCams/service"
	"HotCams/types"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	AuthService service.IAuthService
}

func (a *Auth) RegisterRouter(r gin.IRouter) {
	g := r.Group("/auth")
	g.POST("/wallet", context.Wrap(a.WalletLogin))
}

// WalletLogin 钱包签名登录，未注册的钱包返回 signup_needed
func (a *Auth) WalletLogin(c *gin.Context) error {
	var req types.WalletLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return types.ErrInvalidBody
	}
	resp, err := a.AuthService.WalletLogin(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
