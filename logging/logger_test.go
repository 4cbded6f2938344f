package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	jwterrors "github.com/grovetools/jwtview/errors"
	"github.com/grovetools/jwtview/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStderr redirects the stderr sink and fixes the terminal check.
func captureStderr(t *testing.T, terminal bool) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	origOut, origTerm := stderr, stderrIsTerminal
	stderr = &buf
	stderrIsTerminal = func() bool { return terminal }
	t.Cleanup(func() {
		stderr, stderrIsTerminal = origOut, origTerm
	})
	return &buf
}

func TestNewLoggerIsCachedPerComponent(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	testutil.Chdir(t, t.TempDir())
	Reset()
	t.Cleanup(Reset)

	a := NewLogger("decode")
	b := NewLogger("decode")
	c := NewLogger("viewer")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, "decode", a.Data["component"])
}

func TestNewLoggerReadsConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "jwtview.yml", "version: \"1.0\"\nlogging:\n  level: warn\n")
	testutil.Chdir(t, dir)
	Reset()
	t.Cleanup(Reset)

	logger := NewLogger("configured")
	assert.Equal(t, logrus.WarnLevel, logger.Logger.GetLevel())
}

func TestLevelFromEnvironment(t *testing.T) {
	captureStderr(t, true)

	t.Setenv("JWTVIEW_LOG_LEVEL", "error")
	logger := New("env", Config{Level: "debug"})
	assert.Equal(t, logrus.ErrorLevel, logger.Logger.GetLevel())

	t.Setenv("JWTVIEW_LOG_LEVEL", "")
	logger = New("env", Config{Level: "nonsense"})
	assert.Equal(t, logrus.InfoLevel, logger.Logger.GetLevel())
}

func TestCallerFromEnvironment(t *testing.T) {
	captureStderr(t, true)
	t.Setenv("JWTVIEW_LOG_CALLER", "true")

	logger := New("caller", Config{})
	assert.True(t, logger.Logger.ReportCaller)
}

func TestStderrSink(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		level    string
		terminal bool
		want     bool
	}{
		{"auto interactive info", "", "info", true, false},
		{"auto interactive debug", "", "debug", true, true},
		{"auto piped", "auto", "info", false, true},
		{"always", "always", "info", true, true},
		{"never", "never", "debug", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWTVIEW_LOG_LEVEL", "")
			t.Setenv("JWTVIEW_DEBUG", "")
			buf := captureStderr(t, tt.terminal)

			logger := New("sink", Config{Level: tt.level, Format: FormatConfig{StructuredToStderr: tt.mode}})
			logger.Info("hello")

			assert.Equal(t, tt.want, strings.Contains(buf.String(), "hello"), "output: %q", buf.String())
		})
	}
}

func TestFileSink(t *testing.T) {
	captureStderr(t, true)
	t.Setenv("JWTVIEW_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "logs", "jwtview.log")
	logger := New("file", Config{File: FileSinkConfig{Enabled: true, Path: path, Format: "json"}})
	logger.WithField("segment", "payload").Info("decoded")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &line))
	assert.Equal(t, "decoded", line["msg"])
	assert.Equal(t, "file", line["component"])
	assert.Equal(t, "payload", line["segment"])
}

func TestFileSinkDefaultPath(t *testing.T) {
	captureStderr(t, true)
	t.Setenv("JWTVIEW_LOG_LEVEL", "")
	home := t.TempDir()
	t.Setenv("JWTVIEW_HOME", home)

	logger := New("file", Config{File: FileSinkConfig{Enabled: true}})
	logger.Info("stored")

	data, err := os.ReadFile(filepath.Join(home, "state", "logs", "jwtview.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "stored")
}

func TestTextFormatter(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

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
				Time:    fixed,
				Level:   logrus.InfoLevel,
				Message: "token decoded",
				Data:    logrus.Fields{"component": "decode", "segments": 3, "alg": "HS256"},
			},
			want: []string{"2024-01-02 03:04:05", "[INFO]", "decode", "token decoded", "alg=HS256 segments=3"},
		},
		{
			name:   "simple format",
			config: FormatConfig{DisableTimestamp: true, DisableComponent: true},
			entry: &logrus.Entry{
				Time:    fixed,
				Level:   logrus.WarnLevel,
				Message: "clipboard empty",
				Data:    logrus.Fields{"component": "source"},
			},
			want:    []string{"[WARN]", "clipboard empty"},
			notWant: []string{"2024-01-02", "source"},
		},
		{
			name:   "caller",
			config: FormatConfig{DisableTimestamp: true},
			entry: func() *logrus.Entry {
				logger := logrus.New()
				logger.SetReportCaller(true)
				return &logrus.Entry{
					Logger:  logger,
					Level:   logrus.ErrorLevel,
					Message: "boom",
					Data:    logrus.Fields{},
					Caller: &runtime.Frame{
						File:     "/src/jwtview/pkg/token/token.go",
						Line:     42,
						Function: "github.com/grovetools/jwtview/pkg/token.Decode",
					},
				}
			}(),
			want: []string{"[ERROR]", "[token.go:42 token.Decode]", "boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
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
		})
	}
}

func TestPrettyLogger(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrettyLogger().WithWriter(&buf)

	p.Success("copied to clipboard")
	p.WarnPretty("token has no signature")
	p.ErrorPretty("decode failed", jwterrors.TokenMalformed(2))
	p.ErrorPretty("plain", errors.New("disk full"))
	p.Field("occurrences", 3)
	p.Path("config", "/tmp/jwtview.yml")
	p.Code("line one\nline two")
	p.Divider()
	p.Blank()

	out := buf.String()
	for _, want := range []string{
		"copied to clipboard",
		"token has no signature",
		"decode failed: expected 3 dot-separated segments, found 2",
		"plain: disk full",
		"occurrences", "3",
		"/tmp/jwtview.yml",
		"  line one\n", "  line two\n",
		"────",
	} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasSuffix(out, "\n\n"))
}
