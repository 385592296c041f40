package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Setenv("PLANTVIEW_HOME", t.TempDir())
	Reset()

	logger := NewLogger("test-component")
	require.NotNil(t, logger)
	assert.Equal(t, "test-component", logger.Data["component"])

	// singleton per component
	assert.Same(t, logger, NewLogger("test-component"))
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("PLANTVIEW_LOG_LEVEL", "debug")
	entry := newLoggerFromConfig("lvl", Config{File: FileSinkConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "x.log")}}, true)
	assert.Equal(t, logrus.DebugLevel, entry.Logger.GetLevel())

	t.Setenv("PLANTVIEW_LOG_LEVEL", "")
	entry = newLoggerFromConfig("lvl", Config{Level: "warn", File: FileSinkConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "x.log")}}, true)
	assert.Equal(t, logrus.WarnLevel, entry.Logger.GetLevel())

	entry = newLoggerFromConfig("lvl", Config{Level: "loud", File: FileSinkConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "x.log")}}, true)
	assert.Equal(t, logrus.InfoLevel, entry.Logger.GetLevel())
}

func TestFileSink(t *testing.T) {
	t.Setenv("PLANTVIEW_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "nested", "plantview.log")

	entry := newLoggerFromConfig("sink", Config{
		File:   FileSinkConfig{Enabled: true, Path: path},
		Format: FormatConfig{StructuredToStderr: "never"},
	}, true)
	entry.WithField("module", "reactor_1").Info("poll complete")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "poll complete")
	assert.Contains(t, string(data), "module=reactor_1")
}

func TestDefaultLogFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PLANTVIEW_HOME", home)

	path := LogFilePath("dashboard", Config{})
	want := filepath.Join(home, "state", "plantview", "logs", "dashboard-"+time.Now().Format("2006-01-02")+".log")
	assert.Equal(t, want, path)

	assert.Equal(t, "/var/log/pv.log", LogFilePath("dashboard", Config{File: FileSinkConfig{Enabled: true, Path: "/var/log/pv.log"}}))
}

func TestShouldLogToStderr(t *testing.T) {
	t.Setenv("PLANTVIEW_DEBUG", "")

	assert.True(t, shouldLogToStderr("always", logrus.InfoLevel, true))
	assert.False(t, shouldLogToStderr("never", logrus.DebugLevel, false))
	assert.False(t, shouldLogToStderr("auto", logrus.InfoLevel, true))
	assert.True(t, shouldLogToStderr("auto", logrus.InfoLevel, false))
	assert.True(t, shouldLogToStderr("", logrus.DebugLevel, true))
}

func TestGlobalOutputRedirect(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalOutput(&buf)
	defer SetGlobalOutput(os.Stderr)

	entry := newLoggerFromConfig("redirect", Config{
		File:   FileSinkConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "r.log")},
		Format: FormatConfig{StructuredToStderr: "always"},
	}, true)
	entry.Info("to the terminal")
	assert.Contains(t, buf.String(), "to the terminal")

	buf.Reset()
	restore := MuteTerminal()
	entry.Info("hidden")
	assert.Empty(t, buf.String())

	restore()
	entry.Info("back")
	assert.Contains(t, buf.String(), "back")
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "test message",
				Data:    logrus.Fields{"component": "poller", "b": 2, "a": 1},
			},
			want: []string{"[INFO]", "poller", "test message a=1 b=2"},
		},
		{
			name:   "simple format",
			config: FormatConfig{DisableTimestamp: true, DisableComponent: true},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "warning message",
				Data:    logrus.Fields{"component": "poller"},
			},
			want:    []string{"[WARN]", "warning message"},
			notWant: []string{"poller"},
		},
		{
			name:   "caller information",
			config: FormatConfig{},
			entry: func() *logrus.Entry {
				logger := logrus.New()
				logger.SetReportCaller(true)
				return &logrus.Entry{
					Logger:  logger,
					Level:   logrus.ErrorLevel,
					Message: "with caller",
					Data:    logrus.Fields{},
					Caller: &runtime.Frame{
						File:     "/path/to/file.go",
						Line:     42,
						Function: "github.com/example/package.Fn",
					},
				}
			}(),
			want: []string{"[ERROR]", "[file.go:42 package.Fn]", "with caller"},
		},
		{
			name:   "module names are quoted",
			config: FormatConfig{DisableTimestamp: true},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "Status changed",
				Data:    logrus.Fields{"module": "Reactor 1", "to": "offline", "id": "reactor_1"},
			},
			want: []string{`id=reactor_1 module="Reactor 1" to=offline`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.entry.Time = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
			out, err := (&TextFormatter{Config: tt.config}).Format(tt.entry)
			require.NoError(t, err)

			s := string(out)
			for _, w := range tt.want {
				assert.Contains(t, s, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, s, nw)
			}
			assert.True(t, strings.HasSuffix(s, "\n"))
			if !tt.config.DisableTimestamp {
				assert.True(t, strings.HasPrefix(s, "2024-01-02 03:04:05"))
			}
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	props := doc["properties"].(map[string]interface{})
	assert.Contains(t, props, "level")
	assert.Contains(t, props, "file")
	assert.Contains(t, props, "format")
}
