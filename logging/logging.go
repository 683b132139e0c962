package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Log levels ordered by verbosity
const (
	levelDebug = iota
	levelInfo
	levelError
)

var levelNames = map[string]int{
	"DEBUG": levelDebug,
	"INFO":  levelInfo,
	"ERROR": levelError,
}

// preLogEntry holds a message emitted before the logger is initialized
type preLogEntry struct {
	level   string
	message string
}

var (
	mu          sync.Mutex
	initialized bool
	minLevel    = levelInfo
	preLevel    = levelInfo
	jsonFormat  bool
	logFile     *os.File
	preBuffer   []preLogEntry
	secrets     []string
)

// AddSecret registers a value that must never appear in any log line.
// Every message is passed through the redaction filter before being written.
func AddSecret(value string) {
	if value == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	secrets = append(secrets, value)
}

// Redact replaces all registered secrets in s with a placeholder.
// For callers that emit text outside this package (JSON error output) but
// must honor the same secrecy guarantee as the log paths.
func Redact(s string) string {
	mu.Lock()
	defer mu.Unlock()
	return redact(s)
}

// redact replaces all registered secrets in msg with a placeholder
func redact(msg string) string {
	for _, s := range secrets {
		msg = strings.ReplaceAll(msg, s, "****")
	}
	return msg
}

// parseLevel converts a level name to its numeric value (default INFO)
func parseLevel(name string) int {
	if lvl, ok := levelNames[strings.ToUpper(name)]; ok {
		return lvl
	}
	return levelInfo
}

// PreLog records a message emitted before InitLogger runs.
// Buffered messages are flushed once the logger is initialized, so early
// startup diagnostics (config loading) are not lost.
func PreLog(level, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	entry := preLogEntry{
		level:   strings.ToUpper(level),
		message: redact(fmt.Sprintf(format, args...)),
	}

	if initialized {
		writeEntry(entry.level, entry.message)
		return
	}
	preBuffer = append(preBuffer, entry)
}

// SetPreLogLevel applies a temporary level filter to buffered PreLog messages
func SetPreLogLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	preLevel = parseLevel(level)
}

// InitLogger initializes the logger with an optional log directory, a level,
// and an optional JSON line format. Buffered PreLog messages at or above the
// pre-log level are flushed.
func InitLogger(logPath, logLevel string, jsonLogs bool) error {
	mu.Lock()
	defer mu.Unlock()

	minLevel = parseLevel(logLevel)
	jsonFormat = jsonLogs

	// Log file is optional: empty path means stdout only
	if logPath != "" {
		if err := os.MkdirAll(logPath, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(filepath.Join(logPath, "ghfetch.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
	}

	initialized = true

	// Flush buffered pre-init messages
	for _, entry := range preBuffer {
		if parseLevel(entry.level) >= preLevel {
			writeEntry(entry.level, entry.message)
		}
	}
	preBuffer = nil

	return nil
}

// writeEntry writes a single log line to stdout and the log file if open.
// Callers must hold mu.
func writeEntry(level, message string) {
	if parseLevel(level) < minLevel {
		return
	}

	var line string
	if jsonFormat {
		payload, err := json.Marshal(map[string]string{
			"time":    time.Now().Format(time.RFC3339),
			"level":   level,
			"message": message,
		})
		if err != nil {
			return
		}
		line = string(payload)
	} else {
		line = fmt.Sprintf("[%s] %s", level, message)
	}

	fmt.Println(line)
	if logFile != nil {
		fmt.Fprintln(logFile, line)
	}
}

func logf(level, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	writeEntry(level, redact(fmt.Sprintf(format, args...)))
}

// LogDebug logs a debug message
func LogDebug(format string, args ...interface{}) {
	logf("DEBUG", format, args...)
}

// LogInfo logs an informational message
func LogInfo(format string, args ...interface{}) {
	logf("INFO", format, args...)
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	logf("ERROR", format, args...)
}

// LogOutput prints user-facing output to stdout, bypassing level filtering.
// Redaction still applies.
func LogOutput(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Println(redact(fmt.Sprintf(format, args...)))
	if logFile != nil {
		fmt.Fprintln(logFile, redact(fmt.Sprintf(format, args...)))
	}
}
