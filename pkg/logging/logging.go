package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config controls how diagnostics are written.
type Config struct {
	Level  string
	Format string
	// Output defaults to stderr so stdout stays free for command results.
	Output io.Writer
}

// New builds a zap logger from cfg.
func New(cfg Config) (logger *zap.Logger, err error) {
	var level zapcore.Level
	level, err = ParseLevel(cfg.Level)
	if err != nil {
		return logger, err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      zapcore.OmitKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "", FormatConsole:
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		err = errors.Errorf("unknown log format %q (want %s or %s)", cfg.Format, FormatConsole, FormatJSON)
		return logger, err
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(output), level)
	logger = zap.New(core)
	return logger, err
}

// ParseLevel maps a level name to a zap level. An empty name means warn.
func ParseLevel(name string) (level zapcore.Level, err error) {
	if name == "" {
		level = zapcore.WarnLevel
		return level, err
	}

	err = level.UnmarshalText([]byte(strings.ToLower(name)))
	if err != nil {
		err = errors.Wrapf(err, "invalid log level %q", name)
		return level, err
	}

	return level, err
}
