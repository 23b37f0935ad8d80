package main

import (
	"HotCams/pkg/apiclient"
	"HotCams/pkg/log"
	"HotCams/pkg/studio"
	"HotCams/pkg/wallet"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "studio",
		Usage: "performer tools for HotCams",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api", Value: "http://localhost:8080", EnvVars: []string{"HOTCAMS_API"}},
			&cli.StringFlag{Name: "token", EnvVars: []string{"HOTCAMS_TOKEN"}, Usage: "access token of a performer account"},
		},
		Commands: []*cli.Command{
			{
				Name:  "live",
				Usage: "go live with synthetic devices and print simulated metrics",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "category"},
					&cli.DurationFlag{Name: "duration", Value: time.Minute},
					&cli.DurationFlag{Name: "tick", Value: studio.DefaultTick},
					&cli.BoolFlag{Name: "offline", Usage: "do not register the stream with the API"},
				},
				Action: live,
			},
			{
				Name:  "tip",
				Usage: "send an ETH or USDC tip from a local key and record it",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "rpc", Required: true, EnvVars: []string{"ETH_RPC"}},
					&cli.StringFlag{Name: "key", Required: true, EnvVars: []string{"ETH_PRIVATE_KEY"}},
					&cli.StringFlag{Name: "usdc", Value: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"},
					&cli.StringFlag{Name: "to", Required: true},
					&cli.Uint64Flag{Name: "stream"},
					&cli.StringFlag{Name: "asset", Value: string(wallet.ETH)},
					&cli.StringFlag{Name: "amount", Value: wallet.Presets[0]},
					&cli.StringFlag{Name: "message"},
				},
				Action: tip,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.L.Fatal("studio failed", zap.Error(err))
	}
}

func newClient(c *cli.Context) *apiclient.Client {
	client := apiclient.New(apiclient.Config{BaseURL: c.String("api")})
	client.SetToken(c.String("token"))
	return client
}

func live(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []studio.Option
	opts = append(opts, studio.WithTick(c.Duration("tick")))
	if !c.Bool("offline") {
		if c.String("token") == "" {
			return errors.New("--token is required unless --offline is set")
		}
		opts = append(opts, studio.WithBroadcaster(newClient(c)))
	}
	session := studio.NewSession(&studio.Synthetic{}, opts...)
	defer func() {
		// 任何退出路径都释放设备并下播
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := session.Stop(stopCtx); err != nil {
			log.L.Warn("stop session", zap.Error(err))
		}
	}()

	if err := session.Open(ctx, studio.DefaultConstraints); err != nil {
		return errors.New(studio.Explain(err))
	}
	stream, err := session.GoLive(ctx, studio.LiveInfo{Title: c.String("title"), Category: c.String("category")})
	if err != nil {
		return err
	}
	log.L.Info("live",
		zap.Uint64("stream_id", stream.ID),
		zap.String("rtmp_url", stream.RtmpURL),
		zap.String("stream_key", stream.StreamKey),
		zap.String("playback_id", stream.PlaybackID),
	)

	report := time.NewTicker(5 * time.Second)
	defer report.Stop()
	deadline := time.NewTimer(c.Duration("duration"))
	defer deadline.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-deadline.C:
			return nil
		case <-report.C:
			m := session.Metrics()
			log.L.Info("metrics",
				zap.Duration("duration", m.Duration),
				zap.Int64("viewers", m.Viewers),
				zap.String("tips", fmt.Sprintf("%.4f", m.Tips)),
				zap.Int("chat", len(m.Chat)),
			)
		}
	}
}

func tip(c *cli.Context) error {
	signer, err := wallet.DialEVMSigner(c.Context, c.String("rpc"), c.String("key"), c.String("usdc"))
	if err != nil {
		return err
	}
	opts := wallet.Options{}
	if c.String("token") != "" {
		opts.Recorder = newClient(c)
	}
	modal := wallet.NewModal(wallet.Wallets{EVM: signer}, wallet.Recipient{
		StreamID:   c.Uint64("stream"),
		EthAddress: c.String("to"),
	}, opts)
	modal.SetAsset(wallet.Asset(c.String("asset")))
	modal.SetAmount(c.String("amount"))
	modal.SetMessage(c.String("message"))

	hash, err := modal.Send(c.Context)
	if err != nil {
		return err
	}
	modal.Close()
	log.L.Info("tip sent", zap.String("tx_hash", hash), zap.String("from", signer.Address()))
	return nil
}
