package service

import (
	"HotCams/config"
	"HotCams/dao/cache"
	"HotCams/models"
	"HotCams/pkg/log"
	"HotCams/types"
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const (
	weeklyDays        = 7
	topPerformerLimit = 5
)

type IAnalyticsService interface {
	Get(ctx context.Context, now time.Time) (*types.AnalyticsResponse, error)
	Rollup(ctx context.Context, day time.Time) error
}

type AnalyticsService struct {
	Conf     *config.Config
	Store    StreamStore
	Fallback *MockStreamStore
	Cache    *cache.AnalyticsStorage
}

var _ IAnalyticsService = (*AnalyticsService)(nil)

type liveSnapshot struct {
	LiveStreams    int64 `json:"liveStreams"`
	CurrentViewers int64 `json:"currentViewers"`
}

func (s *AnalyticsService) fee() float64 {
	if s.Conf == nil || s.Conf.Analytics == nil {
		return 0.2
	}
	return s.Conf.Analytics.PlatformFee
}

// Get 写入当天汇总后返回快照；数据库不可用时返回 mock 数据
func (s *AnalyticsService) Get(ctx context.Context, now time.Time) (*types.AnalyticsResponse, error) {
	resp, err := s.build(ctx, s.Store, now)
	if err == nil {
		return resp, nil
	}
	log.L.Warn("analytics query failed, serving mock data", zap.Error(err))
	return s.build(ctx, s.Fallback, now)
}

func (s *AnalyticsService) build(ctx context.Context, store StreamStore, now time.Time) (*types.AnalyticsResponse, error) {
	now = now.UTC()
	today, err := store.DayTotals(ctx, now, true)
	if err != nil {
		return nil, fmt.Errorf("today totals: %w", err)
	}
	if err := store.SaveDaily(ctx, today); err != nil {
		return nil, fmt.Errorf("save today: %w", err)
	}

	var (
		history    []*models.Analytics
		live       liveSnapshot
		totalUsers int64
		top        []*models.Users
		byCurrency map[models.Currency]float64
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) (err error) {
		history, err = store.DailyRange(ctx, models.GlobalScope, now.AddDate(0, 0, -(weeklyDays-1)), now)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		if s.Cache.Get(ctx, &live) {
			return nil
		}
		if live.LiveStreams, live.CurrentViewers, err = store.LiveStats(ctx); err != nil {
			return err
		}
		s.Cache.Set(ctx, live)
		return nil
	})
	p.Go(func(ctx context.Context) (err error) {
		totalUsers, err = store.TotalUsers(ctx)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		byCurrency, err = store.TipsByCurrency(ctx, now)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		top, err = store.TopPerformers(ctx, topPerformerLimit)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	// TotalTips 是跨币种的名义总额，抽成按同一口径计算
	revenue := s.revenue(today.TotalTips)
	resp := &types.AnalyticsResponse{
		Today:  dailyStats(today),
		Weekly: fillWeek(history, today, now),
		RealTime: types.RealTime{
			LiveStreams:    live.LiveStreams,
			CurrentViewers: live.CurrentViewers,
			TodayTips:      today.TotalTips,
			TodayRevenue:   revenue,
		},
		Overview: types.Overview{
			TotalUsers:   totalUsers,
			NewUsers:     today.NewUsers,
			LiveStreams:  live.LiveStreams,
			TotalViewers: live.CurrentViewers,
			TotalTips:    today.TotalTips,
			TotalRevenue: revenue,
		},
		TopPerformers: make([]types.TopPerformer, 0, len(top)),
	}
	if len(byCurrency) > 0 {
		resp.RealTime.TodayTipsByCurrency = make(map[string]float64, len(byCurrency))
		for c, v := range byCurrency {
			resp.RealTime.TodayTipsByCurrency[string(c)] = v
		}
	}
	for _, u := range top {
		if u.PerformerProfile == nil {
			continue
		}
		resp.TopPerformers = append(resp.TopPerformers, types.TopPerformer{
			ID:            u.ID,
			StageName:     u.PerformerProfile.StageName,
			Category:      string(u.PerformerProfile.Category),
			ProfilePhoto:  u.PerformerProfile.ProfilePhoto,
			TotalEarnings: u.PerformerProfile.TotalEarnings,
			TotalViews:    u.PerformerProfile.TotalViews,
		})
	}
	return resp, nil
}

// revenue 平台抽成，保留两位小数
func (s *AnalyticsService) revenue(tips float64) float64 {
	return math.Round(tips*s.fee()*100) / 100
}

func dailyStats(row *models.Analytics) types.DailyStats {
	return types.DailyStats{
		Date:          time.Time(row.Date).UTC().Format(time.DateOnly),
		Views:         row.TotalViews,
		UniqueViewers: row.UniqueViewers,
		Tips:          row.TotalTips,
		NewFollowers:  row.NewFollowers,
		NewUsers:      row.NewUsers,
	}
}

// fillWeek 最近 7 天按日期正序，缺失的日期补零
func fillWeek(history []*models.Analytics, today *models.Analytics, now time.Time) []types.DailyStats {
	byDay := make(map[string]types.DailyStats, len(history)+1)
	for _, row := range history {
		st := dailyStats(row)
		byDay[st.Date] = st
	}
	st := dailyStats(today)
	byDay[st.Date] = st

	week := make([]types.DailyStats, 0, weeklyDays)
	start := models.Day(now).AddDate(0, 0, -(weeklyDays - 1))
	for i := 0; i < weeklyDays; i++ {
		date := start.AddDate(0, 0, i).Format(time.DateOnly)
		if st, ok := byDay[date]; ok {
			week = append(week, st)
			continue
		}
		week = append(week, types.DailyStats{Date: date})
	}
	return week
}

// Rollup 汇总某一天的全站与各主播数据，可重复执行
func (s *AnalyticsService) Rollup(ctx context.Context, day time.Time) error {
	global, err := s.Store.DayTotals(ctx, day, false)
	if err != nil {
		return fmt.Errorf("day totals: %w", err)
	}
	if err := s.Store.SaveDaily(ctx, global); err != nil {
		return fmt.Errorf("save global: %w", err)
	}
	rows, err := s.Store.PerformerDayTotals(ctx, day)
	if err != nil {
		return fmt.Errorf("performer totals: %w", err)
	}
	for _, row := range rows {
		if err := s.Store.SaveDaily(ctx, row); err != nil {
			return fmt.Errorf("save performer %d: %w", row.UserID, err)
		}
	}
	log.L.Info("analytics rollup done",
		zap.String("date", models.Day(day).Format(time.DateOnly)),
		zap.Int("performers", len(rows)),
	)
	return nil
}
