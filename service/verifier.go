package service

import (
	"HotCams/config"
	"HotCams/models"
	"HotCams/pkg/chain"
	"HotCams/pkg/log"
	"HotCams/pkg/mq"
	"HotCams/pkg/socket"
	"context"
	"errors"
	"fmt"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

const (
	verifyQueueSize   = 256
	breakerFailures   = 5
	breakerCooldown   = 30 * time.Second
	maxConcurrentTips = 32
)

// TipVerifier 后台确认打赏交易，只发事件不修改打赏记录
type TipVerifier struct {
	confirmers map[string]chain.Confirmer
	interval   time.Duration
	timeout    time.Duration
	hub        *socket.Hub
	publisher  mq.Publisher
	inflight   cmap.ConcurrentMap[string, *models.Tip]
	queue      chan *models.Tip
}

func NewTipVerifier(conf *config.Config, hub *socket.Hub, publisher mq.Publisher) *TipVerifier {
	v := &TipVerifier{
		confirmers: make(map[string]chain.Confirmer),
		interval:   5 * time.Second,
		timeout:    15 * time.Minute,
		hub:        hub,
		publisher:  publisher,
		inflight:   cmap.New[*models.Tip](),
		queue:      make(chan *models.Tip, verifyQueueSize),
	}
	c := conf.Chain
	if c == nil || !c.Verify {
		return v
	}
	v.interval, v.timeout = c.PollInterval, c.Timeout

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if c.EthRPC != "" {
		evm, err := chain.DialEVM(ctx, c.EthRPC, c.EthConfirmations)
		if err != nil {
			log.L.Warn("dial ethereum rpc failed", zap.Error(err))
		} else {
			v.Register(chain.Ethereum, chain.WithBreaker("eth-rpc", evm, breakerFailures, breakerCooldown))
		}
	}
	if c.SolRPC != "" {
		sol, err := chain.DialSolana(ctx, c.SolRPC, c.SolCommitment)
		if err != nil {
			log.L.Warn("dial solana rpc failed", zap.Error(err))
		} else {
			v.Register(chain.Solana, chain.WithBreaker("sol-rpc", sol, breakerFailures, breakerCooldown))
		}
	}
	return v
}

func (v *TipVerifier) Register(c chain.Chain, confirmer chain.Confirmer) {
	v.confirmers[string(c)] = confirmer
}

// SetTiming 调整轮询间隔与超时
func (v *TipVerifier) SetTiming(interval, timeout time.Duration) {
	v.interval, v.timeout = interval, timeout
}

func (v *TipVerifier) Enabled() bool {
	return len(v.confirmers) > 0
}

// Submit 同一交易哈希同时只校验一次，队列满时丢弃
func (v *TipVerifier) Submit(tip *models.Tip) bool {
	if _, ok := v.confirmers[tip.Chain]; !ok {
		return false
	}
	if !v.inflight.SetIfAbsent(tip.TxHash, tip) {
		return false
	}
	select {
	case v.queue <- tip:
		return true
	default:
		v.inflight.Remove(tip.TxHash)
		log.L.Warn("verify queue full", zap.String("tx_hash", tip.TxHash))
		return false
	}
}

func (v *TipVerifier) Pending() int {
	return v.inflight.Count()
}

// Run 阻塞直到 ctx 结束，退出前等待进行中的校验
func (v *TipVerifier) Run(ctx context.Context) error {
	var wg conc.WaitGroup
	defer wg.Wait()

	sem := make(chan struct{}, maxConcurrentTips)
	for {
		select {
		case <-ctx.Done():
			return nil
		case tip := <-v.queue:
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return nil
			}
			wg.Go(func() {
				defer func() { <-sem }()
				v.verify(ctx, tip)
			})
		}
	}
}

func (v *TipVerifier) verify(ctx context.Context, tip *models.Tip) {
	defer v.inflight.Remove(tip.TxHash)

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	err := chain.Wait(ctx, v.confirmers[tip.Chain], tip.TxHash, v.interval)
	event, tag := socket.EventTipVerified, mq.TagTipVerified
	fields := []zap.Field{zap.String("tx_hash", tip.TxHash), zap.String("chain", tip.Chain)}
	switch {
	case err == nil:
		log.L.Info("tip confirmed", fields...)
	case errors.Is(err, chain.ErrTxFailed), errors.Is(err, context.DeadlineExceeded):
		event, tag = socket.EventTipRejected, mq.TagTipRejected
		log.L.Warn("tip rejected", append(fields, zap.Error(err))...)
	default:
		// 进程退出，不下结论
		return
	}

	v.hub.Publish(socket.Event{Type: event, StreamID: tip.StreamID, Data: tip})
	if err := v.publisher.Publish(context.Background(), tag, fmt.Sprint(tip.ID), tip); err != nil {
		log.L.Warn("publish tip event failed", zap.String("tag", tag), zap.Error(err))
	}
}
