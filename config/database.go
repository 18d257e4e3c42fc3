package config

import (
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"time"
)

func (c DatabaseConfig) mysqlConfig() *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = c.Username
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = c.Addr()
	cfg.DBName = c.Database
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg
}

func (c DatabaseConfig) DSN() string {
	return c.mysqlConfig().FormatDSN()
}

// migration檔案一個檔案內有多個SQL語句
func (c DatabaseConfig) MigrationDSN() string {
	cfg := c.mysqlConfig()
	cfg.MultiStatements = true
	return cfg.FormatDSN()
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// 建立連線池，整個程式共用一個*gorm.DB
func SetupMySQLConnection(config DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(gormmysql.Open(config.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(config.LogLevel)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	return db, nil
}
