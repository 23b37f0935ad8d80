package config

import "time"

// Chain 链上交易校验配置
type Chain struct {
	Verify           bool   `json:"verify" yaml:"verify"`
	EthRPC           string `json:"eth_rpc" yaml:"eth_rpc"`
	SolRPC           string `json:"sol_rpc" yaml:"sol_rpc"`
	EthConfirmations uint64 `json:"eth_confirmations" yaml:"eth_confirmations"`
	// SolCommitment processed | confirmed | finalized
	SolCommitment string        `json:"sol_commitment" yaml:"sol_commitment"`
	PollInterval  time.Duration `json:"poll_interval" yaml:"poll_interval"`
	Timeout       time.Duration `json:"timeout" yaml:"timeout"`
	// LoginWindow 钱包签名登录时间戳允许的偏差
	LoginWindow time.Duration `json:"login_window" yaml:"login_window"`
}

func (c *Chain) setDefaults() {
	if c.EthConfirmations == 0 {
		c.EthConfirmations = 1
	}
	if c.SolCommitment == "" {
		c.SolCommitment = "confirmed"
	}
	if c.PollInterval == 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.Timeout == 0 {
		c.Timeout = 15 * time.Minute
	}
	if c.LoginWindow == 0 {
		c.LoginWindow = time.Hour
	}
}
