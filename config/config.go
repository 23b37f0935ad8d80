package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App       *App             `json:"app" yaml:"app"`
	Server    *Server          `json:"server" yaml:"server"`
	Database  *Database        `json:"database" yaml:"database"`
	Redis     *Redis           `json:"redis" yaml:"redis"`
	Jwt       *Jwt             `json:"jwt" yaml:"jwt"`
	Oss       *OssConfig       `json:"oss" yaml:"oss"`
	RocketMQ  *RocketMQConfig  `json:"rocketmq" yaml:"rocketmq"`
	Chain     *Chain           `json:"chain" yaml:"chain"`
	Analytics *AnalyticsConfig `json:"analytics" yaml:"analytics"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

// New 读取 yaml 配置文件，.env 与环境变量覆盖其中的敏感项
func New(filename string) *Config {
	_ = godotenv.Load()

	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("parse %s: %v", filename, err))
	}
	conf.applyEnv()

	return conf
}

// Parse 解析 yaml 内容并补齐默认值
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}
	conf.setDefaults()
	return &conf, nil
}

func (c *Config) setDefaults() {
	if c.App == nil {
		c.App = &App{}
	}
	if c.App.Mode == "" {
		c.App.Mode = ModeReal
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Database == nil {
		c.Database = &Database{}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMySQL
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Jwt.ExpiresIn == 0 {
		c.Jwt.ExpiresIn = 48 * 3600
	}
	if c.Chain == nil {
		c.Chain = &Chain{}
	}
	c.Chain.setDefaults()
	if c.Analytics == nil {
		c.Analytics = &AnalyticsConfig{}
	}
	c.Analytics.setDefaults()
}

func (c *Config) applyEnv() {
	if v := os.Getenv("APP_MODE"); v != "" {
		c.App.Mode = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.Database.Dsn = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Jwt.Secret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		if c.Redis == nil {
			c.Redis = &Redis{}
		}
		c.Redis.Address = v
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}

// MockMode 是否使用固定的 mock 数据代替数据库
func (c *Config) MockMode() bool {
	return c.App.Mode == ModeMock
}
