// Package logging builds the per-component logrus loggers used across jwtview.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/grovetools/jwtview/config"
	"github.com/grovetools/jwtview/pkg/paths"
	"github.com/grovetools/jwtview/util/pathutil"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	// stderr and stderrIsTerminal are swapped in tests.
	stderr           io.Writer = os.Stderr
	stderrIsTerminal           = func() bool {
		return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	}
)

// NewLogger returns the logger for component, creating it on first use from
// the "logging" section of the nearest jwtview configuration.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	var logCfg Config
	if cfg, err := config.LoadDefault(); err == nil {
		if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
			logrus.Warnf("Failed to parse 'logging' config: %v", err)
		}
	}

	entry := New(component, logCfg)
	loggers[component] = entry
	return entry
}

// Reset forgets every cached logger.
func Reset() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	loggers = make(map[string]*logrus.Entry)
}

// New builds an uncached logger for component from logCfg and the
// JWTVIEW_LOG_* environment.
func New(component string, logCfg Config) *logrus.Entry {
	logger := logrus.New()

	levelStr := "info"
	if env := os.Getenv("JWTVIEW_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if os.Getenv("JWTVIEW_LOG_CALLER") == "true" || logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	logger.SetFormatter(formatterFor(logCfg.Format.Preset, logCfg.Format))

	if logCfg.File.Enabled {
		path := paths.LogFile()
		if logCfg.File.Path != "" {
			path = logCfg.File.Path
			if expanded, err := pathutil.Expand(path); err == nil {
				path = expanded
			}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			logger.Warnf("Failed to create log directory %s: %v", filepath.Dir(path), err)
		} else if file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			logger.Warnf("Failed to open log file %s: %v", path, err)
		} else {
			preset := logCfg.Format.Preset
			if logCfg.File.Format == "json" {
				preset = "json"
			}
			logger.AddHook(&writerHook{
				writer:    file,
				formatter: formatterFor(preset, FormatConfig{DisableComponent: logCfg.Format.DisableComponent}),
			})
		}
	}

	if shouldLogToStderr(logCfg.Format.StructuredToStderr, level) {
		logger.SetOutput(stderr)
	} else {
		logger.SetOutput(io.Discard)
	}

	return logger.WithField("component", component)
}

func shouldLogToStderr(mode string, level logrus.Level) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		isDebug := os.Getenv("JWTVIEW_DEBUG") == "1" || level >= logrus.DebugLevel
		return isDebug || !stderrIsTerminal()
	}
}

func formatterFor(preset string, format FormatConfig) logrus.Formatter {
	switch preset {
	case "json":
		return &logrus.JSONFormatter{}
	case "simple":
		return &TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}}
	default:
		return &TextFormatter{Config: format}
	}
}

// writerHook copies every entry to a writer with its own formatter.
type writerHook struct {
	mu        sync.Mutex
	writer    io.Writer
	formatter logrus.Formatter
}

func (h *writerHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *writerHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.writer.Write(line)
	return err
}
