package dao

import (
	"HotCams/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Tips struct {
	Repo[models.Tip]
}

func NewTips(db *gorm.DB) *Tips {
	return &Tips{
		Repo: NewRepo[models.Tip](db),
	}
}

// CreateWithTotals 写入打赏并累加直播间与主播的打赏总额
func (t *Tips) CreateWithTotals(ctx context.Context, tip *models.Tip, performerID uint64) error {
	return t.Txx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(tip).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Stream{}).
			Where("id = ?", tip.StreamID).
			Update("total_tips", gorm.Expr("total_tips + ?", tip.Amount)).Error; err != nil {
			return err
		}
		return tx.Model(&models.PerformerProfile{}).
			Where("user_id = ?", performerID).
			Update("total_earnings", gorm.Expr("total_earnings + ?", tip.Amount)).Error
	})
}

func (t *Tips) ExistsTxHash(ctx context.Context, txHash string) (bool, error) {
	return t.IsExist(ctx, "tx_hash = ?", txHash)
}

// SumBetween [from, to) 内的打赏名义总额，不同币种的数额直接相加
func (t *Tips) SumBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var sum float64
	err := t.Model(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

func (t *Tips) ListByStream(ctx context.Context, streamID uint64, limit int) ([]*models.Tip, error) {
	var tips []*models.Tip
	err := t.Db.WithContext(ctx).
		Where("stream_id = ?", streamID).
		Order("created_at DESC").
		Limit(limit).
		Find(&tips).Error
	return tips, err
}

// SumByUserOnStream 用户在某直播间的累计打赏
func (t *Tips) SumByUserOnStream(ctx context.Context, userID, streamID uint64) (float64, error) {
	var sum float64
	err := t.Model(ctx).
		Where("from_user_id = ? AND stream_id = ?", userID, streamID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

type userAmount struct {
	UserID uint64
	Total  float64
}

type currencyAmount struct {
	Currency models.Currency
	Total    float64
}

// SumByCurrencyBetween 按币种分别汇总 [from, to) 内的打赏
func (t *Tips) SumByCurrencyBetween(ctx context.Context, from, to time.Time) (map[models.Currency]float64, error) {
	var rows []currencyAmount
	err := t.Model(ctx).
		Select("currency, COALESCE(SUM(amount), 0) AS total").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("currency").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[models.Currency]float64, len(rows))
	for _, r := range rows {
		out[r.Currency] = r.Total
	}
	return out, nil
}

// SumByPerformerBetween 按主播聚合 [from, to) 内收到的打赏
func (t *Tips) SumByPerformerBetween(ctx context.Context, from, to time.Time) (map[uint64]float64, error) {
	var rows []userAmount
	err := t.Db.WithContext(ctx).
		Table("tips").
		Select("streams.user_id AS user_id, COALESCE(SUM(tips.amount), 0) AS total").
		Joins("JOIN streams ON streams.id = tips.stream_id").
		Where("tips.created_at >= ? AND tips.created_at < ?", from, to).
		Group("streams.user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint64]float64, len(rows))
	for _, r := range rows {
		out[r.UserID] = r.Total
	}
	return out, nil
}
