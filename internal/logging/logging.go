package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// EnvLogPath overrides the default log directory
const EnvLogPath = "KEYDECK_LOG_PATH"

const diagFileName = "diagnostics_log.txt"

var (
	diagLog  = zerolog.Nop()
	diagFile *os.File
	logMu    sync.Mutex
	logReady bool
	dir      string
)

// ResolveDir picks the log directory: the --logpath flag first, then
// KEYDECK_LOG_PATH, then defaultDir. Relative paths are made absolute
// against the working directory.
func ResolveDir(flagPath, defaultDir string) (string, error) {
	for _, p := range []string{flagPath, os.Getenv(EnvLogPath)} {
		if p == "" {
			continue
		}
		if filepath.IsAbs(p) {
			return p, nil
		}
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(wd, p), nil
	}

	if defaultDir == "" {
		return "", fmt.Errorf("no log directory configured")
	}
	return defaultDir, nil
}

func SetDir(d string) {
	logMu.Lock()
	defer logMu.Unlock()
	dir = d
}

// Init opens the diagnostics file in the configured directory
func Init(level zerolog.Level) error {
	logMu.Lock()
	defer logMu.Unlock()

	if logReady {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, diagFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	diagFile = f
	diagLog = newLogger(f, level)

	logReady = true
	return nil
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	return zerolog.New(consoleWriter).Level(level).With().Timestamp().Int("pid", os.Getpid()).Logger()
}

// Close flushes and closes the diagnostics file. Safe to call repeatedly.
func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	diagLog = zerolog.Nop()
	logReady = false
}

// Logger returns the diagnostics logger, or a no-op logger before Init
func Logger() zerolog.Logger {
	logMu.Lock()
	defer logMu.Unlock()
	return diagLog
}

// Component returns the diagnostics logger tagged with a component name
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}

// ParseLevel maps a --log-level value, defaulting to info
func ParseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
