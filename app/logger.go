package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"stormlightlabs.org/textcompare/textdiff"
)

// ComparisonLogEntry records a single computation: which inputs, under which options, and what came out.
type ComparisonLogEntry struct {
	Timestamp        time.Time      `json:"timestamp"`
	Session          string         `json:"session"`
	Left             string         `json:"left"`
	Right            string         `json:"right"`
	Format           string         `json:"format"`
	Mode             string         `json:"mode"`
	IgnoreCase       bool           `json:"ignore_case"`
	IgnoreWhitespace bool           `json:"ignore_whitespace"`
	Stats            textdiff.Stats `json:"stats"`
	Blocks           int            `json:"blocks"`
	DurationMS       int64          `json:"duration_ms"`
}

// ComparisonLogger appends one JSON line per computation to a file in the configuration directory.
// The log is write-only; nothing in the application reads it back.
// A nil *ComparisonLogger is valid and discards everything.
type ComparisonLogger struct {
	logFile *os.File
	logPath string
	session string
}

// NewComparisonLogger creates a new ComparisonLogger and a corresponding log file.
// The log file is named with the session UUID and a timestamp to ensure uniqueness.
func NewComparisonLogger() (*ComparisonLogger, error) {
	configDir := viper.GetString(KeyConfigDir)
	if configDir == "" {
		var err error
		configDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	session := uuid.New().String()
	filename := fmt.Sprintf("textcompare_%s_%d.log", session, time.Now().Unix())
	logPath := filepath.Join(configDir, filename)

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	return &ComparisonLogger{
		logFile: logFile,
		logPath: logPath,
		session: session,
	}, nil
}

// LogComparison appends an entry for c, computed from the inputs named left and right in duration.
func (l *ComparisonLogger) LogComparison(left, right string, c textdiff.Comparison, duration time.Duration) {
	if l == nil {
		return
	}

	entry := ComparisonLogEntry{
		Timestamp:        time.Now(),
		Session:          l.session,
		Left:             left,
		Right:            right,
		Format:           c.Format,
		Mode:             c.Options.Mode.String(),
		IgnoreCase:       c.Options.IgnoreCase,
		IgnoreWhitespace: c.Options.IgnoreWhitespace,
		Stats:            c.Result.Stats,
		Blocks:           len(c.Blocks),
		DurationMS:       duration.Milliseconds(),
	}

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fallbackEntry := map[string]any{
			"timestamp": time.Now(),
			"session":   l.session,
			"error":     "failed to marshal log entry: " + err.Error(),
		}
		if fallbackData, fallbackErr := json.Marshal(fallbackEntry); fallbackErr == nil {
			l.logFile.Write(append(fallbackData, '\n'))
		}
		return
	}

	l.logFile.Write(append(jsonData, '\n'))
	l.logFile.Sync()
}

// Close closes the log file.
func (l *ComparisonLogger) Close() error {
	if l != nil && l.logFile != nil {
		return l.logFile.Close()
	}
	return nil
}

// LogPath returns the path to the current log file.
func (l *ComparisonLogger) LogPath() string {
	if l == nil {
		return ""
	}
	return l.logPath
}

// Session returns the UUID stamped on every entry of this log.
func (l *ComparisonLogger) Session() string {
	if l == nil {
		return ""
	}
	return l.session
}
