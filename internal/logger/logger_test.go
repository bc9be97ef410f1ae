package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{input: "debug", want: zap.DebugLevel},
		{input: "info", want: zap.InfoLevel},
		{input: "warn", want: zap.WarnLevel},
		{input: "error", want: zap.ErrorLevel},
		{input: "", want: zap.WarnLevel},
		{input: "verbose", want: zap.WarnLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger_ConsoleJSON(t *testing.T) {
	var buf bytes.Buffer
	param := DefaultLogParam()
	param.Level = LevelInfo
	param.Format = FormatJSON

	logger, err := newLogger(param, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("visible", zap.String("url", "https://wiki.jenkins-ci.org"))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "https://wiki.jenkins-ci.org", entry["url"])
}

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	param := DefaultLogParam()
	param.Format = FormatText

	logger, err := newLogger(param, &buf)
	require.NoError(t, err)

	logger.Warn("wiki-content not found in content")
	require.NoError(t, logger.Sync())

	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "wiki-content not found in content")
}

func TestNewLogger_WithFile(t *testing.T) {
	var buf bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "wiki-content.log")

	param := DefaultLogParam()
	param.Level = LevelDebug
	param.FilePath = logPath

	logger, err := newLogger(param, &buf)
	require.NoError(t, err)

	logger.Info("written to both outputs")
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "written to both outputs")
	assert.Contains(t, buf.String(), "written to both outputs")
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	param := DefaultLogParam()
	param.Level = "loud"

	logger, err := NewLogger(param)
	assert.Error(t, err)
	assert.Nil(t, logger)
}
