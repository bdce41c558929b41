package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	base    *logrus.Logger
	logFile *os.File // file sink of base, closed when replaced
	loggers = make(map[string]*logrus.Entry)
)

// Configure (re)builds the shared logger. Loggers handed out before the call
// keep working and pick up the new level, formatter and output. On error the
// previous configuration stays in place.
func Configure(c Config) error {
	mu.Lock()
	defer mu.Unlock()
	l, f, err := build(c)
	if err != nil {
		return err
	}
	if base == nil {
		base, logFile = l, f
		return nil
	}
	base.SetLevel(l.Level)
	base.SetFormatter(l.Formatter)
	base.SetOutput(l.Out)
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	return nil
}

// NewLogger returns the logger for a component, creating it once.
func NewLogger(component string) *logrus.Entry {
	mu.Lock()
	defer mu.Unlock()

	if entry, ok := loggers[component]; ok {
		return entry
	}
	if base == nil {
		// Not configured yet: defaults, which open no file and never fail.
		base, _, _ = build(Config{})
	}
	entry := base.WithField("component", component)
	loggers[component] = entry
	return entry
}

func build(c Config) (*logrus.Logger, *os.File, error) {
	logger := logrus.New()

	levelStr := "info"
	if env := os.Getenv("TODOS_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if c.Level != "" {
		levelStr = c.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	switch strings.ToLower(c.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	var (
		writers []io.Writer
		file    *os.File
	)
	if c.File != "" {
		path := expandPath(c.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log dir: %w", err)
		}
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		writers = append(writers, file)
	}

	if toStderr(c.Stderr, level) {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}
	return logger, file, nil
}

func toStderr(mode string, level logrus.Level) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	interactive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return level >= logrus.DebugLevel || !interactive
}

// expandPath expands a leading tilde.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
