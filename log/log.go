package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level      string `help:"日志级别[debug|info|warn|error]" default:"info"`
	Encoding   string `help:"日志格式[json|console]" default:"console"`
	File       string `help:"日志文件，为空只输出到stderr" default:""`
	MaxSize    int    `help:"单个日志文件大小(MB)" default:"100"`
	MaxBackups int    `help:"保留的旧日志文件数" default:"7"`
	MaxAge     int    `help:"旧日志保留天数" default:"30"`
	Compress   bool   `help:"是否压缩旧日志" default:"false"`
}

// New 按配置创建日志，设置了文件时同时写文件并按大小切割
func New(conf Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(conf.Level)
	if err != nil {
		return nil, err
	}
	encConf := zap.NewProductionEncoderConfig()
	encConf.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if conf.Encoding == "json" {
		enc = zapcore.NewJSONEncoder(encConf)
	} else {
		encConf.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encConf)
	}

	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)}
	if conf.File != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   conf.File,
			MaxSize:    conf.MaxSize,
			MaxBackups: conf.MaxBackups,
			MaxAge:     conf.MaxAge,
			Compress:   conf.Compress,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encConf), w, level))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// Factory 给process使用的日志工厂，出错时保留原日志
func Factory(conf *Config) func(*zap.Logger) *zap.Logger {
	return func(def *zap.Logger) *zap.Logger {
		l, err := New(*conf)
		if err != nil {
			def.Warn("invalid log config, using default logger", zap.Error(err))
			return def
		}
		return l
	}
}
