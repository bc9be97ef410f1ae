package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	FormatConsole = "console"
	FormatJSON    = "json"
	FormatText    = "text"
)

// LogParam describes where and how log entries are written.
// Console output goes to stderr so stdout stays reserved for command output.
type LogParam struct {
	Level  string
	Format string
	// FilePath enables an additional rotated JSON file output when non-empty.
	FilePath   string
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
	Compress   bool
}

func DefaultLogParam() LogParam {
	return LogParam{
		Level:      LevelWarn,
		Format:     FormatConsole,
		MaxSizeMB:  10,
		MaxAgeDays: 7,
		MaxBackups: 3,
	}
}

// NewLogger builds a zap logger with a console core and, when FilePath is
// set, a lumberjack-rotated file core.
func NewLogger(param LogParam) (*zap.Logger, error) {
	return newLogger(param, os.Stderr)
}

func newLogger(param LogParam, console io.Writer) (*zap.Logger, error) {
	level, err := ParseLevel(param.Level)
	if err != nil {
		return nil, err
	}

	cores := []zapcore.Core{
		zapcore.NewCore(createEncoder(param.Format), zapcore.Lock(zapcore.AddSync(console)), level),
	}

	if param.FilePath != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   param.FilePath,
			MaxSize:    param.MaxSizeMB,
			MaxAge:     param.MaxAgeDays,
			MaxBackups: param.MaxBackups,
			Compress:   param.Compress,
		})
		cores = append(cores, zapcore.NewCore(createEncoder(FormatJSON), fileWriter, level))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

// ParseLevel converts a level name to a zapcore.Level.
// An empty name selects warn.
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case LevelDebug:
		return zap.DebugLevel, nil
	case LevelInfo:
		return zap.InfoLevel, nil
	case LevelWarn, "":
		return zap.WarnLevel, nil
	case LevelError:
		return zap.ErrorLevel, nil
	default:
		return zap.WarnLevel, fmt.Errorf("log level must be one of: debug, info, warn, error, got '%s'", level)
	}
}

func createEncoder(format string) zapcore.Encoder {
	if format == FormatJSON {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	if format == FormatText {
		// no color codes
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}
