package dao

import (
	"HotCams/models"
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// Limit 未指定时的上限
const performerScanLimit = 500

type PerformerFilter struct {
	Category models.Category // 空值不过滤
	LiveOnly bool
	Search   string // 艺名、所在地、标签子串，大小写不敏感
	Limit    int
}

// PerformerRow 主播、当前直播与粉丝数
type PerformerRow struct {
	User          *models.Users
	Stream        *models.Stream
	FollowerCount int64
}

func (r *PerformerRow) IsLive() bool {
	return r.Stream != nil && r.Stream.IsLive
}

type Performers struct {
	Repo[models.PerformerProfile]
}

func NewPerformers(db *gorm.DB) *Performers {
	return &Performers{
		Repo: NewRepo[models.PerformerProfile](db),
	}
}

// List 按分类、是否在播与关键字筛选，直播中优先，其次按在线人数、总观看数排序。
// 排序与截断都在 SQL 中完成，避免先截断再排序漏掉低观看数的在播主播
func (p *Performers) List(ctx context.Context, filter PerformerFilter) ([]*PerformerRow, error) {
	var users []*models.Users
	q := p.Db.WithContext(ctx).
		Model(&models.Users{}).
		Select("users.*").
		Joins("JOIN performer_profiles ON performer_profiles.user_id = users.id").
		Joins("LEFT JOIN streams ON streams.user_id = users.id AND streams.is_live = ?", true).
		Preload("PerformerProfile").
		Where("users.role = ?", models.RolePerformer)
	if filter.Category != "" {
		q = q.Where("performer_profiles.category = ?", filter.Category)
	}
	if filter.LiveOnly {
		q = q.Where("streams.id IS NOT NULL")
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		like := "%" + search + "%"
		q = q.Where("(LOWER(performer_profiles.stage_name) LIKE ? OR LOWER(performer_profiles.location) LIKE ? OR LOWER(performer_profiles.tags) LIKE ?)",
			like, like, like)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = performerScanLimit
	}
	err := q.Order("CASE WHEN streams.id IS NULL THEN 0 ELSE 1 END DESC").
		Order("COALESCE(streams.current_viewers, 0) DESC").
		Order("performer_profiles.total_views DESC").
		Order("users.id").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return []*PerformerRow{}, nil
	}

	ids := make([]uint64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	var streams []*models.Stream
	err = p.Db.WithContext(ctx).
		Where("user_id IN ? AND is_live = ?", ids, true).
		Order("started_at DESC").
		Find(&streams).Error
	if err != nil {
		return nil, err
	}
	live := make(map[uint64]*models.Stream, len(streams))
	for _, s := range streams {
		if _, ok := live[s.UserID]; !ok {
			live[s.UserID] = s
		}
	}

	followers, err := countFollowers(ctx, p.Db, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]*PerformerRow, 0, len(users))
	for _, u := range users {
		if u.PerformerProfile == nil {
			continue
		}
		rows = append(rows, &PerformerRow{
			User:          u,
			Stream:        live[u.ID],
			FollowerCount: followers[u.ID],
		})
	}
	SortPerformers(rows)
	return rows, nil
}

// SortPerformers 直播中在前，再按在线人数、总观看数降序
func SortPerformers(rows []*PerformerRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.IsLive() != b.IsLive() {
			return a.IsLive()
		}
		var av, bv int64
		if a.Stream != nil {
			av = a.Stream.CurrentViewers
		}
		if b.Stream != nil {
			bv = b.Stream.CurrentViewers
		}
		if av != bv {
			return av > bv
		}
		return a.User.PerformerProfile.TotalViews > b.User.PerformerProfile.TotalViews
	})
}

// TopByEarnings 收益榜
func (p *Performers) TopByEarnings(ctx context.Context, limit int) ([]*models.Users, error) {
	var users []*models.Users
	err := p.Db.WithContext(ctx).
		Model(&models.Users{}).
		Joins("JOIN performer_profiles ON performer_profiles.user_id = users.id").
		Preload("PerformerProfile").
		Where("users.role = ?", models.RolePerformer).
		Order("performer_profiles.total_earnings DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (p *Performers) FindByUser(ctx context.Context, userID uint64) (*models.PerformerProfile, error) {
	return p.FindByWhere(ctx, "user_id = ?", userID)
}

// ListUserIDs 全部主播的用户 ID
func (p *Performers) ListUserIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := p.Model(ctx).Pluck("user_id", &ids).Error
	return ids, err
}

// AddViews 主播累计观看数
func (p *Performers) AddViews(ctx context.Context, userID uint64, delta int64) error {
	return p.Model(ctx).
		Where("user_id = ?", userID).
		Update("total_views", gorm.Expr("total_views + ?", delta)).Error
}
