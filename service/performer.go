package service

import (
	"HotCams/dao"
	"HotCams/dao/cache"
	"HotCams/models"
	"HotCams/pkg/log"
	"HotCams/types"
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type IPerformerService interface {
	List(ctx context.Context, q *types.PerformerQuery) ([]*types.PerformerSummary, error)
}

type PerformerService struct {
	Store    StreamStore
	Fallback *MockStreamStore
	Cache    *cache.PerformerStorage
}

var _ IPerformerService = (*PerformerService)(nil)

// PerformerFilter 解析后的列表查询条件
type PerformerFilter = dao.PerformerFilter

// ParsePerformerQuery category=ALL 或为空表示不过滤；limit 超过上限时截断
func ParsePerformerQuery(q *types.PerformerQuery) (*PerformerFilter, error) {
	f := &PerformerFilter{Search: strings.TrimSpace(q.Search), Limit: types.DefaultPerformerLimit}
	if c := strings.TrimSpace(q.Category); c != "" && !strings.EqualFold(c, "ALL") {
		category, ok := models.ParseCategory(c)
		if !ok {
			return nil, types.ErrInvalidCategory
		}
		f.Category = category
	}
	if q.Live != "" {
		live, err := strconv.ParseBool(q.Live)
		if err != nil {
			return nil, types.ErrInvalidQuery
		}
		f.LiveOnly = live
	}
	if q.Limit != "" {
		limit, err := strconv.Atoi(q.Limit)
		if err != nil || limit < 1 {
			return nil, types.ErrInvalidQuery
		}
		f.Limit = min(limit, types.MaxPerformerLimit)
	}
	return f, nil
}

// MatchSearch 艺名、标签、所在地任一包含关键字即命中
func MatchSearch(p *models.PerformerProfile, search string) bool {
	if search == "" {
		return true
	}
	if p == nil {
		return false
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.StageName), needle) ||
		p.HasTag(needle) ||
		strings.Contains(strings.ToLower(p.Location), needle)
}

func (s *PerformerService) List(ctx context.Context, q *types.PerformerQuery) ([]*types.PerformerSummary, error) {
	f, err := ParsePerformerQuery(q)
	if err != nil {
		return nil, err
	}

	var out []*types.PerformerSummary
	category := string(f.Category)
	if s.Cache.Get(ctx, category, f.LiveOnly, f.Search, f.Limit, &out) {
		return out, nil
	}

	rows, err := s.Store.ListPerformers(ctx, *f)
	if err != nil {
		log.L.Warn("list performers failed, serving mock data", zap.Error(err))
		if rows, err = s.Fallback.ListPerformers(ctx, *f); err != nil {
			return nil, err
		}
	}

	out = make([]*types.PerformerSummary, 0, min(len(rows), f.Limit))
	for _, row := range rows {
		if len(out) >= f.Limit {
			break
		}
		if !MatchSearch(row.User.PerformerProfile, f.Search) {
			continue
		}
		out = append(out, summarize(row))
	}
	s.Cache.Set(ctx, category, f.LiveOnly, f.Search, f.Limit, out)
	return out, nil
}

func summarize(row *dao.PerformerRow) *types.PerformerSummary {
	u := row.User
	return &types.PerformerSummary{
		ID:               u.ID,
		Username:         u.Username,
		DisplayName:      u.DisplayName,
		WalletAddress:    u.WalletAddress(),
		Role:             u.Role,
		IsOnline:         u.IsOnline,
		IsVerified:       u.IsVerified,
		PerformerProfile: u.PerformerProfile,
		Stream:           types.NewStreamSummary(row.Stream),
		FollowerCount:    row.FollowerCount,
	}
}
