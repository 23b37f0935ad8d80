package mq

import (
	"HotCams/config"
	"HotCams/pkg/log"
	"context"
	"encoding/json"
	"fmt"

	rmq_client "github.com/apache/rocketmq-clients/golang/v5"
	"github.com/apache/rocketmq-clients/golang/v5/credentials"
	"go.uber.org/zap"
)

const (
	TagTipCreated  = "tip.created"
	TagTipVerified = "tip.verified"
	TagTipRejected = "tip.rejected"
	TagStreamLive  = "stream.live"
	TagStreamEnded = "stream.ended"
)

// Publisher 领域事件投递
type Publisher interface {
	Publish(ctx context.Context, tag, key string, payload any) error
	Close() error
}

type Producer struct {
	producer rmq_client.Producer
	topic    string
}

var _ Publisher = (*Producer)(nil)

// NewPublisher 未配置 RocketMQ 或启动失败时退化为空实现
func NewPublisher(cfg *config.RocketMQConfig) Publisher {
	if !cfg.Enabled() {
		return NopPublisher{}
	}
	p, err := rmq_client.NewProducer(&rmq_client.Config{
		Endpoint: cfg.Endpoint,
		Credentials: &credentials.SessionCredentials{
			AccessKey:    cfg.AccessKey,
			AccessSecret: cfg.SecretKey,
		},
	}, rmq_client.WithTopics(cfg.TipTopic))
	if err != nil {
		log.L.Warn("init rocketmq producer failed", zap.Error(err))
		return NopPublisher{}
	}
	if err = p.Start(); err != nil {
		log.L.Warn("start rocketmq producer failed", zap.Error(err))
		return NopPublisher{}
	}
	log.L.Info("init producer success", zap.String("topic", cfg.TipTopic))
	return &Producer{producer: p, topic: cfg.TipTopic}
}

func (p *Producer) Publish(ctx context.Context, tag, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", tag, err)
	}
	msg := &rmq_client.Message{
		Topic: p.topic,
		Body:  body,
	}
	msg.SetTag(tag)
	if key != "" {
		msg.SetKeys(key)
	}

	res, err := p.producer.Send(ctx, msg)
	if err != nil {
		return err
	}
	if len(res) > 0 {
		log.L.Debug("send message success", zap.String("tag", tag), zap.String("msg_id", res[0].MessageID))
	}
	return nil
}

func (p *Producer) Close() error {
	return p.producer.GracefulStop()
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }

func (NopPublisher) Close() error { return nil }
