package server

import (
	"HotCams/config"
	"HotCams/pkg/log"
	"HotCams/pkg/mq"
	"HotCams/service"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AppProvider struct {
	Config    *config.Config
	Engine    *gin.Engine
	Backend   *service.Backend
	Analytics service.IAnalyticsService
	Verifier  *service.TipVerifier
	Publisher mq.Publisher
}

// serverID 形如 hostname:8080，仅用于日志
func serverID(port int) string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return fmt.Sprintf("%s:%d", host, port)
}

func Run(ctx *cli.Context, app *AppProvider) error {
	eg, groupCtx := errgroup.WithContext(ctx.Context)
	c := make(chan os.Signal, 1)
	// 终止的信号 服务要停止了
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)

	log.L.Info("server starting", zap.String("serverId", serverID(app.Config.Server.Http)),
		zap.Int("port", app.Config.Server.Http),
		zap.String("env", app.Config.App.Env),
		zap.String("mode", app.Config.App.Mode),
	)

	return run(c, eg, groupCtx, app)
}

func run(c chan os.Signal, eg *errgroup.Group, ctx context.Context, app *AppProvider) error {
	sid := serverID(app.Config.Server.Http)
	serv := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.Config.Server.Http),
		Handler: app.Engine,
	}

	// 启动 http 服务
	eg.Go(func() error {
		err := serv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if app.Verifier != nil && app.Verifier.Enabled() {
		eg.Go(func() error {
			return app.Verifier.Run(ctx)
		})
	}

	if app.Backend.Database {
		eg.Go(func() error {
			return runRollup(ctx, app.Config.Analytics.RollupSpec, app.Analytics)
		})
	}

	eg.Go(func() error {
		defer func() {
			log.L.Info("server stopping", zap.String("serverId", sid))

			// 等待中断信号以优雅地关闭服务器
			timeCtx, timeCancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer timeCancel()

			if err := serv.Shutdown(timeCtx); err != nil {
				log.L.Info("server stopping", zap.String("serverId", sid), zap.Error(err))
			}
			if app.Publisher != nil {
				if err := app.Publisher.Close(); err != nil {
					log.L.Warn("close publisher", zap.Error(err))
				}
			}
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c:
			// 让 verifier 与定时任务一并退出
			return errStopped
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, errStopped) {
		log.L.Info("server stopping", zap.Error(err))
	}

	log.L.Info("server stopped", zap.String("serverId", sid))

	return nil
}

var errStopped = errors.New("server stopped")

// runRollup 按 cron 表达式汇总前一天的数据
func runRollup(ctx context.Context, spec string, analytics service.IAnalyticsService) error {
	sched := cron.New(cron.WithLocation(time.UTC))
	_, err := sched.AddFunc(spec, func() {
		day := time.Now().UTC().AddDate(0, 0, -1)
		if err := analytics.Rollup(ctx, day); err != nil {
			log.L.Error("analytics rollup failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("rollup spec %q: %w", spec, err)
	}
	sched.Start()
	<-ctx.Done()
	<-sched.Stop().Done()
	return nil
}
