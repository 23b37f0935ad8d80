package handler

import (
	"HotCams/config"
	"HotCams/middleware"
	"HotCams/pkg/context"
	"HotCams/pkg/response"
	"HotCams/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Follow struct {
	Config        *config.Config
	Backend       *service.Backend
	FollowService service.IFollowService
}

func (f *Follow) RegisterRouter(r gin.IRouter) {
	authorize := authorize(f.Config)
	g := r.Group("/follow", middleware.RequireDatabase(f.Backend.Database))
	g.POST("/:user_id", authorize, context.Wrap(f.FollowUser))
	g.DELETE("/:user_id", authorize, context.Wrap(f.UnfollowUser))
	g.GET("/:user_id", authorize, context.Wrap(f.GetFollowStatus))
	g.GET("/:user_id/count", context.Wrap(f.GetCount))
}

// FollowUser 关注用户
func (f *Follow) FollowUser(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Unauthorized")
	}
	targetUserID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}

	resp, err := f.FollowService.Follow(c.Request.Context(), userID, targetUserID)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// UnfollowUser 取消关注用户
func (f *Follow) UnfollowUser(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Unauthorized")
	}
	targetUserID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}

	resp, err := f.FollowService.Unfollow(c.Request.Context(), userID, targetUserID)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// GetFollowStatus 是否已关注
func (f *Follow) GetFollowStatus(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "Unauthorized")
	}
	targetUserID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}

	resp, err := f.FollowService.Status(c.Request.Context(), userID, targetUserID)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}

// GetCount 粉丝数与关注数
func (f *Follow) GetCount(c *gin.Context) error {
	targetUserID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}
	resp, err := f.FollowService.Counts(c.Request.Context(), targetUserID)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
