package main

import (
	"HotCams/config"
	"HotCams/pkg/database"
	"HotCams/pkg/log"
	"HotCams/pkg/seed"
	"HotCams/pkg/server"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)
	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "HotCams REST API",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					return server.Run(ctx, InitServer(cfg))
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update database tables",
				Action: func(ctx *cli.Context) error {
					db, err := openDB(cfg)
					if err != nil {
						return err
					}
					if err := database.Migrate(db); err != nil {
						return err
					}
					log.L.Info("migrate done")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "insert demo performers, viewers, streams and analytics",
				Action: func(ctx *cli.Context) error {
					db, err := openDB(cfg)
					if err != nil {
						return err
					}
					if err := database.Migrate(db); err != nil {
						return err
					}
					sum, err := seed.Seed(ctx.Context, db, time.Now())
					if errors.Is(err, seed.ErrSeeded) {
						log.L.Info("seed skipped, demo data already present")
						return nil
					}
					if err != nil {
						return err
					}
					log.L.Info("seed done",
						zap.Int("performers", sum.Performers),
						zap.Int("viewers", sum.Viewers),
						zap.Int("live_streams", sum.LiveStreams),
						zap.Int("tips", sum.Tips),
						zap.Int("messages", sum.Messages),
					)
					return nil
				},
			},
			{
				Name:  "rollup",
				Usage: "aggregate daily analytics for one date",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD, defaults to yesterday (UTC)"},
				},
				Action: func(ctx *cli.Context) error {
					day := time.Now().UTC().AddDate(0, 0, -1)
					if v := ctx.String("date"); v != "" {
						d, err := time.Parse(time.DateOnly, v)
						if err != nil {
							return fmt.Errorf("invalid --date %q: %w", v, err)
						}
						day = d
					}
					app := InitServer(cfg)
					if !app.Backend.Database {
						return errors.New("rollup requires a database")
					}
					return app.Analytics.Rollup(ctx.Context, day)
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to start server", zap.Error(err))
	}
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.MockMode() {
		return nil, errors.New("database disabled in mock mode")
	}
	return database.Open(cfg.Database, cfg.Debug())
}
