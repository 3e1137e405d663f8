package db

import (
	"time"

	"go.uber.org/zap"

	"github.com/zeebo/errs"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const Mysql = "mysql"

const Postgresql = "postgres"

const Sqlite3 = "sqlite3"

var ErrDB = errs.Class("DB")

// Config 报表数据源，Dsn为空时不启用
type Config struct {
	Driver          string        `help:"数据库驱动[mysql|postgres|sqlite3]" default:"sqlite3"`
	Dsn             string        `help:"数据库连接" default:""`
	LogLevel        string        `help:"数据库日志打印级别,默认为空,可选[error|warn|info]" default:"warn"`
	SlowThreshold   time.Duration `help:"慢查询阈值" default:"1s"`
	MaxIdleConn     int           `help:"连接池中空闲连接的最大数量" default:"2"`
	MaxOpenConn     int           `help:"打开数据库连接的最大数量" default:"10"`
	ConnMaxLifetime time.Duration `help:"连接可复用的最大时间" default:"1h"`
	ConnMaxIdleTime time.Duration `help:"连接可以空闲的最长时间" default:"0"`
}

func (conf *Config) Dialector() (dial gorm.Dialector, err error) {
	switch conf.Driver {
	case Mysql:
		dial = mysql.New(mysql.Config{
			DSN:                       conf.Dsn,
			DisableDatetimePrecision:  true,
			SkipInitializeWithVersion: false,
		})
	case Postgresql:
		dial = postgres.New(postgres.Config{
			DSN: conf.Dsn,
		})
	case Sqlite3:
		dial = sqlite.Open(conf.Dsn)
	default:
		return nil, ErrDB.New("unknown driver %q", conf.Driver)
	}
	return
}

// NewDB 打开报表数据源，导出只做查询
func NewDB(zapLog *zap.Logger, cfg Config) (*gorm.DB, error) {
	if cfg.Dsn == "" {
		return nil, ErrDB.New("dsn is empty")
	}
	dial, err := cfg.Dialector()
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dial, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 getLogInterface(zapLog, cfg.LogLevel, cfg.SlowThreshold),
	})
	if err != nil {
		return nil, ErrDB.Wrap(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, ErrDB.Wrap(err)
	}
	if cfg.MaxIdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	}
	if cfg.MaxOpenConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
	return db, nil
}

// Close 关闭连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return ErrDB.Wrap(err)
	}
	return ErrDB.Wrap(sqlDB.Close())
}
