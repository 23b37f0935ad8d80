package config

type OssConfig struct {
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	Region          string `json:"region" yaml:"region"`
	Bucket          string `json:"bucket" yaml:"bucket"`
	AccessKeyID     string `json:"ak" yaml:"ak"`
	AccessKeySecret string `json:"sk" yaml:"sk"`
	CdnURL          string `json:"cdn_url" yaml:"cdn_url"`
}

func (o *OssConfig) Enabled() bool {
	return o != nil && o.Bucket != "" && o.Endpoint != ""
}

func ProvideOssConfig(cfg *Config) *OssConfig {
	return cfg.Oss
}
