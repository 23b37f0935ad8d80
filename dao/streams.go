package dao

import (
	"HotCams/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Streams struct {
	Repo[models.Stream]
}

func NewStreams(db *gorm.DB) *Streams {
	return &Streams{
		Repo: NewRepo[models.Stream](db),
	}
}

func (s *Streams) FindLiveByUser(ctx context.Context, userID uint64) (*models.Stream, error) {
	var stream models.Stream
	err := s.Db.WithContext(ctx).
		Where("user_id = ? AND is_live = ?", userID, true).
		Order("started_at DESC").
		First(&stream).Error
	if err != nil {
		return nil, err
	}
	return &stream, nil
}

// ListLive 在播列表，按在线人数降序
func (s *Streams) ListLive(ctx context.Context, limit int) ([]*models.Stream, error) {
	var streams []*models.Stream
	err := s.Db.WithContext(ctx).
		Where("is_live = ?", true).
		Order("current_viewers DESC").
		Limit(limit).
		Find(&streams).Error
	return streams, err
}

// End 下播，保留历史记录。返回是否实际发生了状态变化
func (s *Streams) End(ctx context.Context, id uint64, at time.Time) (bool, error) {
	res := s.Model(ctx).
		Where("id = ? AND is_live = ?", id, true).
		Updates(map[string]any{
			"is_live":         false,
			"current_viewers": 0,
			"ended_at":        at,
		})
	return res.RowsAffected > 0, res.Error
}

// AdjustViewers 在线人数增减，不小于 0；join 时同时累计总观看数
func (s *Streams) AdjustViewers(ctx context.Context, id uint64, delta int64) error {
	updates := map[string]any{
		"current_viewers": gorm.Expr("CASE WHEN current_viewers + ? < 0 THEN 0 ELSE current_viewers + ? END", delta, delta),
	}
	if delta > 0 {
		updates["total_views"] = gorm.Expr("total_views + ?", delta)
	}
	return s.Model(ctx).Where("id = ? AND is_live = ?", id, true).Updates(updates).Error
}

// SumCurrentViewers 所有在播直播间的在线人数之和
func (s *Streams) SumCurrentViewers(ctx context.Context) (int64, error) {
	var sum int64
	err := s.Model(ctx).
		Where("is_live = ?", true).
		Select("COALESCE(SUM(current_viewers), 0)").
		Scan(&sum).Error
	return sum, err
}

func (s *Streams) CountLive(ctx context.Context) (int64, error) {
	return s.FindCount(ctx, "is_live = ?", true)
}

// SumViewsStartedBetween [from, to) 内开播的直播累计观看数
func (s *Streams) SumViewsStartedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var sum int64
	err := s.Model(ctx).
		Where("started_at >= ? AND started_at < ?", from, to).
		Select("COALESCE(SUM(total_views), 0)").
		Scan(&sum).Error
	return sum, err
}

type userSum struct {
	UserID uint64
	Total  int64
}

// ViewsByPerformerBetween 按主播聚合 [from, to) 内开播直播的观看数
func (s *Streams) ViewsByPerformerBetween(ctx context.Context, from, to time.Time) (map[uint64]int64, error) {
	var rows []userSum
	err := s.Model(ctx).
		Select("user_id, COALESCE(SUM(total_views), 0) AS total").
		Where("started_at >= ? AND started_at < ?", from, to).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint64]int64, len(rows))
	for _, r := range rows {
		out[r.UserID] = r.Total
	}
	return out, nil
}
