package config

type AnalyticsConfig struct {
	// PlatformFee 平台抽成比例
	PlatformFee float64 `json:"platform_fee" yaml:"platform_fee"`
	// RollupSpec 每日汇总任务的 cron 表达式
	RollupSpec string `json:"rollup_spec" yaml:"rollup_spec"`
	// VipTipThreshold 单个直播间累计打赏达到该值的观众发言带 VIP 标识
	VipTipThreshold float64 `json:"vip_tip_threshold" yaml:"vip_tip_threshold"`
	// TipsPerMinute 每个用户每分钟可记录的打赏次数
	TipsPerMinute int `json:"tips_per_minute" yaml:"tips_per_minute"`
}

func (a *AnalyticsConfig) setDefaults() {
	if a.PlatformFee == 0 {
		a.PlatformFee = 0.2
	}
	if a.RollupSpec == "" {
		a.RollupSpec = "5 0 * * *"
	}
	if a.VipTipThreshold == 0 {
		a.VipTipThreshold = 0.05
	}
	if a.TipsPerMinute == 0 {
		a.TipsPerMinute = 12
	}
}
