package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: os.Getenv("OSCDECK_JSON_LOG") == "1",
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05.000Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// GetLogLevel returns the configured log level from environment
func GetLogLevel() string {
	level := os.Getenv("OSCDECK_LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	return level
}

// DefaultLogFile is logs/events.log next to the directory holding the
// executable, where device hosts expect plugin logs.
func DefaultLogFile() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Join("logs", "events.log")
	}
	return filepath.Join(filepath.Dir(exe), "..", "logs", "events.log")
}

// OpenLogFile opens path for appending, creating its directory, and writes a
// start marker.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open log file")
	}

	if _, err = fmt.Fprintf(f, "\n--- start %s ---\n", time.Now().UTC().Format(time.RFC3339)); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "write log file")
	}
	return f, nil
}
