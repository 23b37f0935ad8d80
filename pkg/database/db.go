package database

import (
	"HotCams/config"
	"HotCams/models"
	"HotCams/pkg/log"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 初始化数据库连接；mock 模式下返回 nil，由上层切换到 mock 存储
func NewDB(conf *config.Config) *gorm.DB {
	if conf.MockMode() {
		log.L.Info("mock mode, database disabled")
		return nil
	}
	db, err := Open(conf.Database, conf.Debug())
	if err != nil {
		log.L.Error("failed to connect database", zap.Error(err))
		return nil
	}
	log.L.Info("connect database success", zap.String("driver", conf.Database.Driver))

	if conf.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			log.L.Error("auto migrate failed", zap.Error(err))
		}
	}
	return db
}

func Open(conf *config.Database, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch conf.Driver {
	case config.DriverMySQL:
		dialector = mysql.Open(conf.DSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(conf.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}

	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		// 统一使用 UTC，按天统计的区间才与存储一致
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// OpenMemory 独立的内存 sqlite 库，用于测试与本地演示
func OpenMemory(name string) (*gorm.DB, error) {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	db, err := Open(&config.Database{
		Driver: config.DriverSQLite,
		Dsn:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}, false)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// 内存库在最后一个连接关闭时销毁
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
