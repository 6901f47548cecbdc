// 指示: miu200521358
// Package mlogging は zap ベースのロガー実装を提供する。
package mlogging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/miu200521358/mu_mesh_export/pkg/shared/base/logging"
)

// Logger は zap を利用した logging.ILogger 実装を表す。
type Logger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

// NewLogger は zap ベースのロガーを生成する。base が nil の場合は標準エラー出力向けの既定構成を使う。
// base を注入した場合もレベル切替を効かせるが、注入コア自身の下限より下へは下げられない。
func NewLogger(base *zap.Logger) *Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if base == nil {
		config := zap.NewDevelopmentConfig()
		config.Level = level
		built, err := config.Build()
		if err != nil {
			built = zap.NewNop()
		}
		base = built
	} else {
		base = base.WithOptions(zap.IncreaseLevel(level))
	}
	return &Logger{
		sugar: base.Sugar(),
		level: level,
	}
}

// Debug はデバッグログを出力する。
func (logger *Logger) Debug(format string, params ...any) {
	logger.sugar.Debugf(format, params...)
}

// Info は情報ログを出力する。
func (logger *Logger) Info(format string, params ...any) {
	logger.sugar.Infof(format, params...)
}

// Warn は警告ログを出力する。
func (logger *Logger) Warn(format string, params ...any) {
	logger.sugar.Warnf(format, params...)
}

// Error はエラーログを出力する。
func (logger *Logger) Error(format string, params ...any) {
	logger.sugar.Errorf(format, params...)
}

// SetLevel は出力レベルを設定する。
func (logger *Logger) SetLevel(level logging.Level) {
	logger.level.SetLevel(toZapLevel(level))
}

// Level は現在の出力レベルを返す。
func (logger *Logger) Level() logging.Level {
	return fromZapLevel(logger.level.Level())
}

// toZapLevel は logging.Level を zap のレベルへ変換する。
func toZapLevel(level logging.Level) zapcore.Level {
	switch level {
	case logging.LOG_LEVEL_DEBUG:
		return zapcore.DebugLevel
	case logging.LOG_LEVEL_WARN:
		return zapcore.WarnLevel
	case logging.LOG_LEVEL_ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// fromZapLevel は zap のレベルを logging.Level へ変換する。
func fromZapLevel(level zapcore.Level) logging.Level {
	switch {
	case level <= zapcore.DebugLevel:
		return logging.LOG_LEVEL_DEBUG
	case level == zapcore.InfoLevel:
		return logging.LOG_LEVEL_INFO
	case level == zapcore.WarnLevel:
		return logging.LOG_LEVEL_WARN
	default:
		return logging.LOG_LEVEL_ERROR
	}
}
