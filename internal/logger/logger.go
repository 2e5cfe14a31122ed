package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ahmednasr/askrepo/internal/config"
)

// New builds the process logger: colourised console output in development,
// JSON in production.
func New(cfg config.Config) *zap.Logger {
	var zcfg zap.Config

	if cfg.IsDev() {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zcfg = zap.NewProductionConfig()
	}

	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	return l
}
