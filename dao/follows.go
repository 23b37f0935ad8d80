package dao

import (
	"HotCams/models"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Follows struct {
	Repo[models.Follow]
}

func NewFollows(db *gorm.DB) *Follows {
	return &Follows{
		Repo: NewRepo[models.Follow](db),
	}
}

// IsFollowing 检查是否已关注
func (d *Follows) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var follow models.Follow
	err := d.Db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ? AND status = ?", followerID, followingID, models.FollowStatusActive).
		First(&follow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetStatus 设置关注状态（如不存在则创建）
func (d *Follows) SetStatus(ctx context.Context, followerID, followingID uint64, status int) error {
	now := time.Now().UTC()

	// 优先更新已有记录，(follower_id, following_id) 只保留一行
	res := d.Db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 || status == models.FollowStatusCanceled {
		return nil
	}

	follow := models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return d.Db.WithContext(ctx).Create(&follow).Error
}

// GetFollowerCount 获取粉丝数
func (d *Follows) GetFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	return d.FindCount(ctx, "following_id = ? AND status = ?", userID, models.FollowStatusActive)
}

// GetFollowingCount 获取关注数
func (d *Follows) GetFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	return d.FindCount(ctx, "follower_id = ? AND status = ?", userID, models.FollowStatusActive)
}

// CountNewBetween [from, to) 内新增的关注
func (d *Follows) CountNewBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return d.FindCount(ctx, "created_at >= ? AND created_at < ? AND status = ?", from, to, models.FollowStatusActive)
}

// NewFollowersByUserBetween 按被关注人聚合 [from, to) 内新增粉丝
func (d *Follows) NewFollowersByUserBetween(ctx context.Context, from, to time.Time) (map[uint64]int64, error) {
	var rows []userSum
	err := d.Model(ctx).
		Select("following_id AS user_id, COUNT(*) AS total").
		Where("created_at >= ? AND created_at < ? AND status = ?", from, to, models.FollowStatusActive).
		Group("following_id").
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

// countFollowers 批量统计粉丝数，一次分组查询
func countFollowers(ctx context.Context, db *gorm.DB, ids []uint64) (map[uint64]int64, error) {
	var rows []userSum
	err := db.WithContext(ctx).
		Model(&models.Follow{}).
		Select("following_id AS user_id, COUNT(*) AS total").
		Where("following_id IN ? AND status = ?", ids, models.FollowStatusActive).
		Group("following_id").
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
