package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger — общий интерфейс логирования приложения.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
	Sync() error
}

type zapLogger struct {
	log *zap.SugaredLogger
}

// NewZapLogger создаёт production-логгер zap с JSON-выводом в stdout.
// Уровень берётся из LOG_LEVEL (debug, info, warn, error), по умолчанию info.
func NewZapLogger() (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(os.Getenv("LOG_LEVEL")))
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return NewFromZap(l), nil
}

// NewFromZap оборачивает готовый *zap.Logger.
func NewFromZap(l *zap.Logger) Logger {
	return &zapLogger{log: l.Sugar()}
}

// NewNop возвращает логгер, который ничего не пишет. Используется в тестах.
func NewNop() Logger {
	return NewFromZap(zap.NewNop())
}

func (l *zapLogger) Debugf(format string, args ...any) {
	l.log.Debugf(format, args...)
}

func (l *zapLogger) Infof(format string, args ...any) {
	l.log.Infof(format, args...)
}

func (l *zapLogger) Warnf(format string, args ...any) {
	l.log.Warnf(format, args...)
}

func (l *zapLogger) Errorf(err error, format string, args ...any) {
	l.log.With(zap.Error(err)).Errorf(format, args...)
}

func (l *zapLogger) Sync() error {
	return l.log.Sync()
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
