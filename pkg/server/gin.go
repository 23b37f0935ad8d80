package server

import (
	"HotCams/config"
	"HotCams/middleware"
	"HotCams/pkg/oss"
	"HotCams/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewGinEngine(h *Handlers, conf *config.Config, storage oss.Storage, backend *service.Backend) *gin.Engine {
	if !conf.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(middleware.GinZap(), gin.Recovery(), middleware.Prometheus())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": backend.Database})
	})
	// 未配置 OSS 时由本服务提供上传的媒体文件
	if local, ok := storage.(*oss.LocalStorage); ok {
		r.Static(oss.LocalRoute, local.Dir)
	}

	api := r.Group("/api")
	h.Auth.RegisterRouter(api)
	h.User.RegisterRouter(api)
	h.Performer.RegisterRouter(api)
	h.Analytics.RegisterRouter(api)
	h.Stream.RegisterRouter(api)
	h.Tip.RegisterRouter(api)
	h.Follow.RegisterRouter(api)
	return r
}
