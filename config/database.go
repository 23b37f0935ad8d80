package config

import "fmt"

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Database 数据库配置，Dsn 非空时优先使用
type Database struct {
	Driver   string `json:"driver" yaml:"driver"`
	Dsn      string `json:"dsn" yaml:"dsn"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database"`
	// AutoMigrate 启动时同步表结构
	AutoMigrate bool `json:"auto_migrate" yaml:"auto_migrate"`
}

func (d *Database) DSN() string {
	if d.Dsn != "" {
		return d.Dsn
	}
	if d.Driver == DriverSQLite {
		return "file:hotcams.db?cache=shared"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}
