package config

type RocketMQConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	TipTopic  string `yaml:"tip_topic"`
}

func (r *RocketMQConfig) Enabled() bool {
	return r != nil && r.Endpoint != "" && r.TipTopic != ""
}

func ProvideRocketMQConfig(cfg *Config) *RocketMQConfig {
	return cfg.RocketMQ
}
