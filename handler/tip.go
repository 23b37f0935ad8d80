package handler

import (
	"HotCams/config"
	"HotCams/middleware"
	"HotCams/pkg/context"
	"HotCams/pkg/response"
	"HotCams/service"
	"HotCams/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Tip struct {
	Config     *config.Config
	Backend    *service.Backend
	TipService service.ITipService
}

func (t *Tip) RegisterRouter(r gin.IRouter) {
	perMinute := 12
	if t.Config.Analytics != nil && t.Config.Analytics.TipsPerMinute > 0 {
		perMinute = t.Config.Analytics.TipsPerMinute
	}
	limit := middleware.RateLimit(middleware.NewRateLimiter(perMinute, 5))
	r.POST("/tips", middleware.RequireDatabase(t.Backend.Database), authorize(t.Config), limit, context.Wrap(t.Record))
}

// Record 记录一笔已上链提交的打赏
func (t *Tip) Record(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Unauthorized")
	}
	var req types.RecordTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return types.ErrInvalidBody
	}
	tip, err := t.TipService.Record(c.Request.Context(), uid, &req)
	if err != nil {
		return err
	}
	response.Created(c, tip)
	return nil
}
