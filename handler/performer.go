package handler

import (
	"HotCams/pkg/context"
	"HotCams/pkg/response"
	"HotCams/service"
	"HotCams/types"

	"github.com/gin-gonic/gin"
)

type Performer struct {
	PerformerService service.IPerformerService
}

func (p *Performer) RegisterRouter(r gin.IRouter) {
	r.GET("/performers", context.Wrap(p.List))
}

// List GET /api/performers?category=&live=&search=&limit=
func (p *Performer) List(c *gin.Context) error {
	var q types.PerformerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return types.ErrInvalidQuery
	}
	list, err := p.PerformerService.List(c.Request.Context(), &q)
	if err != nil {
		return err
	}
	response.Success(c, list)
	return nil
}
