package service

import "gorm.io/gorm"

// Backend 当前进程可用的持久化能力
type Backend struct {
	Database bool
}

func NewBackend(db *gorm.DB) *Backend {
	return &Backend{Database: db != nil}
}
