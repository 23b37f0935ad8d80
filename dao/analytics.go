package dao

import (
	"HotCams/models"
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnalyticsDAO struct {
	Repo[models.Analytics]
}

func NewAnalyticsDAO(db *gorm.DB) *AnalyticsDAO {
	return &AnalyticsDAO{
		Repo: NewRepo[models.Analytics](db),
	}
}

// Upsert (date, user_id) 已存在时覆盖计数
func (a *AnalyticsDAO) Upsert(ctx context.Context, row *models.Analytics) error {
	return a.Db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_views", "unique_viewers", "total_tips", "new_followers", "new_users", "updated_at",
		}),
	}).Create(row).Error
}

func (a *AnalyticsDAO) Find(ctx context.Context, scope uint64, day time.Time) (*models.Analytics, error) {
	return a.FindByWhere(ctx, "date = ? AND user_id = ?", datatypes.Date(models.Day(day)), scope)
}

// Range [from, to] 按日期正序
func (a *AnalyticsDAO) Range(ctx context.Context, scope uint64, from, to time.Time) ([]*models.Analytics, error) {
	var rows []*models.Analytics
	err := a.Db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", scope,
			datatypes.Date(models.Day(from)), datatypes.Date(models.Day(to))).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (a *AnalyticsDAO) CountRows(ctx context.Context, scope uint64) (int64, error) {
	return a.FindCount(ctx, "user_id = ?", scope)
}
