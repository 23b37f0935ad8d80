package handler

import (
	"HotCams/pkg/context"
	"HotCams/pkg/response"
	"HotCams/service"
	"time"

	"github.com/gin-gonic/gin"
)

type Analytics struct {
	AnalyticsService service.IAnalyticsService
}

func (a *Analytics) RegisterRouter(r gin.IRouter) {
	r.GET("/analytics", context.Wrap(a.Get))
}

func (a *Analytics) Get(c *gin.Context) error {
	resp, err := a.AnalyticsService.Get(c.Request.Context(), time.Now())
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
