package log

import (
	"os"
	"strings"

	"modelhub/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envLocal = "local"

// NewLogger Warn 以上寫 stderr，其餘寫 stdout；local 環境改用 console 格式方便閱讀
func NewLogger(conf *config.Configuration) (*zap.Logger, error) {
	level := parseLevel(conf.Log.Level)
	threshold := zap.NewAtomicLevelAt(level)

	core := zapcore.NewTee(
		zapcore.NewCore(newEncoder(conf.App.Env), zapcore.Lock(os.Stdout), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return threshold.Enabled(l) && l < zapcore.WarnLevel
		})),
		zapcore.NewCore(newEncoder(conf.App.Env), zapcore.Lock(os.Stderr), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return threshold.Enabled(l) && l >= zapcore.WarnLevel
		})),
	)

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	}
	if conf.App.Name != "" {
		opts = append(opts, zap.Fields(
			zap.String("service", conf.App.Name),
			zap.String("version", conf.App.Version),
		))
	}

	logger := zap.New(core, opts...)
	logger.Info("[Log] zap logger ready", zap.Stringer("level", level), zap.String("env", conf.App.Env))
	return logger, nil
}

// parseLevel 無法辨識時退回 info
func parseLevel(s string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(s))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func newEncoder(env string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.MessageKey = "message"
	cfg.TimeKey = "ts"
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if strings.EqualFold(env, envLocal) {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}
