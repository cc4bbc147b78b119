// Package logging configura o logger zap do processo.
package logging

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *zap.Logger
	once         sync.Once
)

// Init cria o logger global uma única vez. environment "production" usa JSON com
// timestamp ISO8601; qualquer outro valor usa o console de desenvolvimento.
// format ("json"/"console") sobrescreve a codificação.
func Init(environment, level, format string) *zap.Logger {
	once.Do(func() {
		globalLogger = mustBuild(environment, level, format)
		zap.ReplaceGlobals(globalLogger)
	})
	return globalLogger
}

// New constrói um logger independente do global (útil em testes e ferramentas).
func New(environment, level, format string) (*zap.Logger, error) {
	return config(environment, level, format).Build()
}

func mustBuild(environment, level, format string) *zap.Logger {
	l, err := config(environment, level, format).Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return l
}

func config(environment, level, format string) zap.Config {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.DisableStacktrace = true
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))

	switch format {
	case "json":
		cfg.Encoding = "json"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	case "console":
		cfg.Encoding = "console"
	}

	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg
}

// Get devolve o logger global. Antes de Init devolve um logger de produção
// avulso, sem consumir a inicialização.
func Get() *zap.Logger {
	if globalLogger == nil {
		return mustBuild("production", "info", "json")
	}
	return globalLogger
}

// Sync descarrega entradas em buffer.
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}

func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
