// file: database/connect.go
package database

import (
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Connect 建立 MySQL 连接并配置连接池。
// TranslateError 让唯一键冲突映射为 gorm.ErrDuplicatedKey。
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	// 连接 1 小时后过期重建，避免 MySQL wait_timeout 断连
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
