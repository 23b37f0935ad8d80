package types

type DailyStats struct {
	Date          string  `json:"date"`
	Views         int64   `json:"views"`
	UniqueViewers int64   `json:"uniqueViewers"`
	Tips          float64 `json:"tips"`
	NewFollowers  int64   `json:"newFollowers"`
	NewUsers      int64   `json:"newUsers"`
}

// RealTime TodayTips 是各币种数额直接相加的名义值，分币种见 TodayTipsByCurrency
type RealTime struct {
	LiveStreams         int64              `json:"liveStreams"`
	CurrentViewers      int64              `json:"currentViewers"`
	TodayTips           float64            `json:"todayTips"`
	TodayRevenue        float64            `json:"todayRevenue"`
	TodayTipsByCurrency map[string]float64 `json:"todayTipsByCurrency,omitempty"`
}

type Overview struct {
	TotalUsers   int64   `json:"totalUsers"`
	NewUsers     int64   `json:"newUsers"`
	LiveStreams  int64   `json:"liveStreams"`
	TotalViewers int64   `json:"totalViewers"`
	TotalTips    float64 `json:"totalTips"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type TopPerformer struct {
	ID            uint64  `json:"id"`
	StageName     string  `json:"stageName"`
	Category      string  `json:"category"`
	ProfilePhoto  string  `json:"profilePhoto,omitempty"`
	TotalEarnings float64 `json:"totalEarnings"`
	TotalViews    int64   `json:"totalViews"`
}

// AnalyticsResponse GET /api/analytics
type AnalyticsResponse struct {
	Today         DailyStats     `json:"today"`
	Weekly        []DailyStats   `json:"weekly"`
	RealTime      RealTime       `json:"realTime"`
	Overview      Overview       `json:"overview"`
	TopPerformers []TopPerformer `json:"topPerformers"`
}
