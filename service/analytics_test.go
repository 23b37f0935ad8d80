package service

import (
	"HotCams/dao/cache"
	"HotCams/models"
	"HotCams/types"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestAnalyticsGetUpsertsToday(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	now := time.Now().UTC()

	performer := mustCreate(t, e, performerReq("lena", ethAddr1, "CAM_GIRLS"))
	viewer := mustCreate(t, e, viewerReq("milo", ethAddr2))
	started, err := e.streamSvc.Start(ctx, performer, &types.StartStreamRequest{Title: "evening"})
	require.NoError(t, err)
	_, err = e.streamSvc.Join(ctx, started.ID, "viewer-1")
	require.NoError(t, err)
	_, err = e.tipSvc.Record(ctx, viewer, &types.RecordTipRequest{
		StreamID: started.ID, Amount: 1.5, Currency: "ETH", TxHash: "0xaaa",
	})
	require.NoError(t, err)

	first, err := e.analyticsSvc.Get(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1.5, first.Today.Tips)
	assert.Equal(t, 0.3, first.RealTime.TodayRevenue)
	assert.Equal(t, int64(1), first.RealTime.LiveStreams)
	assert.Equal(t, int64(1), first.RealTime.CurrentViewers)
	assert.Equal(t, int64(2), first.Today.NewUsers)
	assert.Equal(t, int64(2), first.Overview.TotalUsers)
	require.Len(t, first.TopPerformers, 1)
	assert.Equal(t, 1.5, first.TopPerformers[0].TotalEarnings)

	_, err = e.tipSvc.Record(ctx, viewer, &types.RecordTipRequest{
		StreamID: started.ID, Amount: 0.5, Currency: "USDC", Chain: "ethereum", TxHash: "0xbbb",
	})
	require.NoError(t, err)
	second, err := e.analyticsSvc.Get(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2.0, second.Today.Tips)
	assert.Equal(t, map[string]float64{"ETH": 1.5, "USDC": 0.5}, second.RealTime.TodayTipsByCurrency)

	count, err := e.analyticsSvc.Store.(*DBStreamStore).Analytics.CountRows(ctx, models.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAnalyticsWeeklyZeroFilled(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	now := time.Now().UTC()

	store := e.analyticsSvc.Store
	require.NoError(t, store.SaveDaily(ctx, &models.Analytics{
		Date:       datatypes.Date(models.Day(now.AddDate(0, 0, -3))),
		TotalViews: 42,
		TotalTips:  7,
	}))
	require.NoError(t, store.SaveDaily(ctx, &models.Analytics{
		Date:       datatypes.Date(models.Day(now.AddDate(0, 0, -10))),
		TotalViews: 99,
	}))

	resp, err := e.analyticsSvc.Get(ctx, now)
	require.NoError(t, err)
	require.Len(t, resp.Weekly, 7)
	assert.Equal(t, now.AddDate(0, 0, -6).Format(time.DateOnly), resp.Weekly[0].Date)
	assert.Equal(t, now.Format(time.DateOnly), resp.Weekly[6].Date)
	assert.Equal(t, int64(42), resp.Weekly[3].Views)
	assert.Equal(t, 7.0, resp.Weekly[3].Tips)
	assert.Zero(t, resp.Weekly[0].Views)
	for i := 1; i < len(resp.Weekly); i++ {
		assert.Less(t, resp.Weekly[i-1].Date, resp.Weekly[i].Date)
	}
}

func TestAnalyticsMockPayload(t *testing.T) {
	mock := NewMockStreamStore()
	svc := &AnalyticsService{Conf: testConfig(), Store: mock, Fallback: mock, Cache: cache.NewAnalyticsStorage(nil)}

	resp, err := svc.Get(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, types.Overview{
		TotalUsers:   1547,
		NewUsers:     23,
		LiveStreams:  12,
		TotalViewers: 2849,
		TotalTips:    15670,
		TotalRevenue: 3134,
	}, resp.Overview)
	assert.Len(t, resp.Weekly, 7)
	assert.Len(t, resp.TopPerformers, 5)
	assert.Equal(t, "StellaRose", resp.TopPerformers[0].StageName)

	again, err := svc.Get(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, resp.Weekly, again.Weekly)
}

func TestAnalyticsRollup(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	performer := mustCreate(t, e, performerReq("nora", ethAddr1, "COUPLES"))
	mustCreate(t, e, performerReq("otto", ethAddr2, "COUPLES"))

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	require.NoError(t, e.analyticsSvc.Rollup(ctx, yesterday))
	require.NoError(t, e.analyticsSvc.Rollup(ctx, yesterday))

	rows, err := e.analyticsSvc.Store.DailyRange(ctx, performer, yesterday, yesterday)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	global, err := e.analyticsSvc.Store.DailyRange(ctx, models.GlobalScope, yesterday, yesterday)
	require.NoError(t, err)
	assert.Len(t, global, 1)
}
