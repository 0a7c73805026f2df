// Package logger builds the service's zap logger and adapts it for gorm.
package logger

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrInvalidLogLevel = errors.New("invalid log level")

const DefaultServiceName = "campus-link-api"

// Config mirrors LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// New builds a logger tagged with serviceName. A nil config logs JSON at info
// to stdout.
func New(config *Config, serviceName string) (*zap.Logger, error) {
	if config == nil {
		config = &Config{}
	}

	level, err := ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}

	sink, _, err := zap.Open(outputPath(config.Output))
	if err != nil {
		return nil, fmt.Errorf("open log output %q: %w", config.Output, err)
	}

	core := zapcore.NewCore(encoder(config.Format), sink, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String(FieldService, serviceName)), nil
}

func encoder(format string) zapcore.Encoder {
	if strings.EqualFold(format, "console") {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func outputPath(output string) string {
	if output == "" {
		return "stdout"
	}
	return output
}

// ParseLevel maps a level name to a zap level. Empty means info; "warning"
// is accepted for warn.
func ParseLevel(level string) (zapcore.Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	switch name {
	case "":
		return zapcore.InfoLevel, nil
	case "warning":
		name = "warn"
	}
	l, err := zapcore.ParseLevel(name)
	if err != nil || l > zapcore.ErrorLevel {
		return zapcore.InfoLevel, fmt.Errorf("%w: %s", ErrInvalidLogLevel, level)
	}
	return l, nil
}
