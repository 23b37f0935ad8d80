package service

import (
	"HotCams/dao"
	"HotCams/models"
	"HotCams/pkg/chain"
	"HotCams/pkg/log"
	"HotCams/pkg/mq"
	"HotCams/pkg/snowflake"
	"HotCams/pkg/socket"
	"HotCams/types"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const tipListLimit = 50

type ITipService interface {
	Record(ctx context.Context, userID uint64, req *types.RecordTipRequest) (*models.Tip, error)
	ListByStream(ctx context.Context, streamID uint64) ([]*models.Tip, error)
}

type TipService struct {
	StreamsDAO *dao.Streams
	TipsDAO    *dao.Tips
	Verifier   *TipVerifier
	Hub        *socket.Hub
	Publisher  mq.Publisher
}

var _ ITipService = (*TipService)(nil)

// TipEvent 直播间内广播的打赏事件
type TipEvent struct {
	Tip       *models.Tip `json:"tip"`
	TotalTips float64     `json:"totalTips"`
}

// tipChain 未指定链时按币种和交易哈希格式推断
func tipChain(currency models.Currency, requested, txHash string) (string, error) {
	switch c := chain.Chain(strings.ToLower(strings.TrimSpace(requested))); c {
	case chain.Ethereum, chain.Solana:
		if currency == models.CurrencyETH && c != chain.Ethereum ||
			currency == models.CurrencySOL && c != chain.Solana {
			return "", types.ErrInvalidCurrency
		}
		return string(c), nil
	case "":
	default:
		return "", types.ErrInvalidCurrency
	}
	switch currency {
	case models.CurrencyETH:
		return string(chain.Ethereum), nil
	case models.CurrencySOL:
		return string(chain.Solana), nil
	}
	return string(chain.DetectChain(txHash)), nil
}

func (s *TipService) Record(ctx context.Context, userID uint64, req *types.RecordTipRequest) (*models.Tip, error) {
	if req.Amount <= 0 {
		return nil, types.ErrInvalidAmount
	}
	currency := models.Currency(strings.ToUpper(strings.TrimSpace(req.Currency)))
	if !currency.Valid() {
		return nil, types.ErrInvalidCurrency
	}
	txHash := strings.TrimSpace(req.TxHash)
	if txHash == "" {
		return nil, types.ErrTxHashRequired
	}
	chainName, err := tipChain(currency, req.Chain, txHash)
	if err != nil {
		return nil, err
	}

	stream, err := s.StreamsDAO.FindByID(ctx, req.StreamID)
	if err != nil {
		if dao.IsNotFound(err) {
			return nil, types.ErrStreamNotFound
		}
		return nil, err
	}
	exists, err := s.TipsDAO.ExistsTxHash(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("check tx hash: %w", err)
	}
	if exists {
		return nil, types.ErrTipRecorded
	}

	tip := &models.Tip{
		ID:         snowflake.GenUint64(),
		FromUserID: userID,
		StreamID:   stream.ID,
		Amount:     req.Amount,
		Currency:   currency,
		Chain:      chainName,
		Message:    strings.TrimSpace(req.Message),
		TxHash:     txHash,
	}
	if err := s.TipsDAO.CreateWithTotals(ctx, tip, stream.UserID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.ErrTipRecorded
		}
		return nil, err
	}

	s.Hub.Publish(socket.Event{
		Type:     socket.EventTip,
		StreamID: stream.ID,
		Data:     TipEvent{Tip: tip, TotalTips: stream.TotalTips + tip.Amount},
	})
	if err := s.Publisher.Publish(ctx, mq.TagTipCreated, fmt.Sprint(tip.ID), tip); err != nil {
		log.L.Warn("publish tip failed", zap.Uint64("tip_id", tip.ID), zap.Error(err))
	}
	if s.Verifier.Enabled() {
		s.Verifier.Submit(tip)
	}
	return tip, nil
}

func (s *TipService) ListByStream(ctx context.Context, streamID uint64) ([]*models.Tip, error) {
	if _, err := s.StreamsDAO.FindByID(ctx, streamID); err != nil {
		if dao.IsNotFound(err) {
			return nil, types.ErrStreamNotFound
		}
		return nil, err
	}
	return s.TipsDAO.ListByStream(ctx, streamID, tipListLimit)
}
