package driver

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	neo4jlog "github.com/neo4j/neo4j-go-driver/v5/neo4j/log"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// LogLevelDebug logs everything including rendered queries and driver internals
	LogLevelDebug LogLevel = iota
	// LogLevelInfo logs general information about driver operations
	LogLevelInfo
	// LogLevelWarn logs warning messages that don't stop execution
	LogLevelWarn
	// LogLevelError logs only error conditions
	LogLevelError
	// LogLevelOff disables all logging
	LogLevelOff
)

// String returns the string representation of a log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel
func ParseLogLevel(level string) LogLevel {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	case "OFF", "NONE":
		return LogLevelOff
	default:
		return LogLevelInfo
	}
}

// Logger defines the interface for pluggable logging in the driver.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})
	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})
	// Warn logs a warning message with optional key-value pairs
	Warn(msg string, keysAndValues ...interface{})
	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
	// IsDebugEnabled returns true if debug logging is enabled
	IsDebugEnabled() bool
	// IsInfoEnabled returns true if info logging is enabled
	IsInfoEnabled() bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Logger is the pluggable logger implementation
	Logger Logger
	// Level is the minimum level the configured logger was built with
	Level LogLevel
	// LogQueryTiming logs every query with its duration and record count
	LogQueryTiming bool
	// LogDriverInternals forwards the neo4j driver's own log lines to Logger
	LogDriverInternals bool
}

// DefaultLoggingConfig returns a logging configuration with no-op logger (silent by default)
func DefaultLoggingConfig() *LoggingConfig {
	return &LoggingConfig{
		Logger: &NoOpLogger{},
		Level:  LogLevelOff,
	}
}

// NewConsoleLoggingConfig creates a console logging configuration
func NewConsoleLoggingConfig(level LogLevel) *LoggingConfig {
	return &LoggingConfig{
		Logger:             NewConsoleLogger(level),
		Level:              level,
		LogQueryTiming:     level <= LogLevelInfo,
		LogDriverInternals: level <= LogLevelDebug,
	}
}

// NewJSONLoggingConfig creates a configuration that writes one JSON object per line
func NewJSONLoggingConfig(level LogLevel, output io.Writer) *LoggingConfig {
	return &LoggingConfig{
		Logger:             NewJSONLogger(level, output),
		Level:              level,
		LogQueryTiming:     level <= LogLevelInfo,
		LogDriverInternals: level <= LogLevelDebug,
	}
}

// NoOpLogger is a logger that does nothing (default behavior)
type NoOpLogger struct{}

func (l *NoOpLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (l *NoOpLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *NoOpLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (l *NoOpLogger) Error(msg string, keysAndValues ...interface{}) {}
func (l *NoOpLogger) IsDebugEnabled() bool                           { return false }
func (l *NoOpLogger) IsInfoEnabled() bool                            { return false }

// ConsoleLogger logs to stdout/stderr with configurable level and formatting
type ConsoleLogger struct {
	level      LogLevel
	debugLog   *log.Logger
	infoLog    *log.Logger
	warnLog    *log.Logger
	errorLog   *log.Logger
	mu         sync.RWMutex
	timeFormat string
}

// NewConsoleLogger creates a new console logger with the specified level
func NewConsoleLogger(level LogLevel) *ConsoleLogger {
	return NewConsoleLoggerWithOutput(level, os.Stdout, os.Stderr)
}

// NewConsoleLoggerWithOutput creates a console logger with custom output writers
func NewConsoleLoggerWithOutput(level LogLevel, stdout, stderr io.Writer) *ConsoleLogger {
	return &ConsoleLogger{
		level:      level,
		debugLog:   log.New(stdout, "", 0),
		infoLog:    log.New(stdout, "", 0),
		warnLog:    log.New(stderr, "", 0),
		errorLog:   log.New(stderr, "", 0),
		timeFormat: "2006-01-02 15:04:05.000",
	}
}

// SetLevel updates the log level
func (c *ConsoleLogger) SetLevel(level LogLevel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.level = level
}

// SetTimeFormat sets the time format for log messages
func (c *ConsoleLogger) SetTimeFormat(format string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeFormat = format
}

func (c *ConsoleLogger) formatMessage(level LogLevel, msg string, keysAndValues ...interface{}) string {
	c.mu.RLock()
	timeFormat := c.timeFormat
	c.mu.RUnlock()

	timestamp := time.Now().Format(timeFormat)
	formatted := fmt.Sprintf("[%s] %s [gopher-graph] %s", timestamp, level.String(), msg)

	if len(keysAndValues) > 0 {
		var pairs []string
		for i := 0; i+1 < len(keysAndValues); i += 2 {
			pairs = append(pairs, fmt.Sprintf("%v=%v", keysAndValues[i], keysAndValues[i+1]))
		}
		if len(pairs) > 0 {
			formatted += " | " + strings.Join(pairs, " ")
		}
	}

	return formatted
}

func (c *ConsoleLogger) enabled(level LogLevel) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.level <= level
}

func (c *ConsoleLogger) Debug(msg string, keysAndValues ...interface{}) {
	if c.enabled(LogLevelDebug) {
		c.debugLog.Println(c.formatMessage(LogLevelDebug, msg, keysAndValues...))
	}
}

func (c *ConsoleLogger) Info(msg string, keysAndValues ...interface{}) {
	if c.enabled(LogLevelInfo) {
		c.infoLog.Println(c.formatMessage(LogLevelInfo, msg, keysAndValues...))
	}
}

func (c *ConsoleLogger) Warn(msg string, keysAndValues ...interface{}) {
	if c.enabled(LogLevelWarn) {
		c.warnLog.Println(c.formatMessage(LogLevelWarn, msg, keysAndValues...))
	}
}

func (c *ConsoleLogger) Error(msg string, keysAndValues ...interface{}) {
	if c.enabled(LogLevelError) {
		c.errorLog.Println(c.formatMessage(LogLevelError, msg, keysAndValues...))
	}
}

func (c *ConsoleLogger) IsDebugEnabled() bool { return c.enabled(LogLevelDebug) }
func (c *ConsoleLogger) IsInfoEnabled() bool  { return c.enabled(LogLevelInfo) }

// LogEntry is a single line written by JSONLogger.
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// JSONLogger writes one JSON object per log line.
type JSONLogger struct {
	level  LogLevel
	output io.Writer
	mu     sync.Mutex
}

// NewJSONLogger creates a JSON logger writing to output.
func NewJSONLogger(level LogLevel, output io.Writer) *JSONLogger {
	return &JSONLogger{level: level, output: output}
}

func (l *JSONLogger) log(level LogLevel, msg string, keysAndValues ...interface{}) {
	if level < l.level {
		return
	}
	entry := LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     level.String(),
		Message:   msg,
		Fields:    parseKeyValues(keysAndValues),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		data = []byte(fmt.Sprintf(`{"level":"ERROR","message":"failed to marshal log entry: %v"}`, err))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write(append(data, '\n'))
}

func (l *JSONLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelDebug, msg, keysAndValues...)
}

func (l *JSONLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelInfo, msg, keysAndValues...)
}

func (l *JSONLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelWarn, msg, keysAndValues...)
}

func (l *JSONLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log(LogLevelError, msg, keysAndValues...)
}

func (l *JSONLogger) IsDebugEnabled() bool { return l.level <= LogLevelDebug }
func (l *JSONLogger) IsInfoEnabled() bool  { return l.level <= LogLevelInfo }

// parseKeyValues folds alternating keys and values into a map. Errors are
// stored as their message so they survive JSON encoding.
func parseKeyValues(keysAndValues []interface{}) map[string]interface{} {
	if len(keysAndValues) < 2 {
		return nil
	}
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key := fmt.Sprintf("%v", keysAndValues[i])
		value := keysAndValues[i+1]
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		fields[key] = value
	}
	return fields
}

// neo4jLogBridge forwards the neo4j driver's internal logging to a Logger.
type neo4jLogBridge struct {
	logger Logger
}

var _ neo4jlog.Logger = (*neo4jLogBridge)(nil)

func (b *neo4jLogBridge) Error(name string, id string, err error) {
	b.logger.Error("neo4j driver error", "component", name, "id", id, "error", err)
}

func (b *neo4jLogBridge) Warnf(name string, id string, msg string, args ...any) {
	b.logger.Warn(fmt.Sprintf(msg, args...), "component", name, "id", id)
}

func (b *neo4jLogBridge) Infof(name string, id string, msg string, args ...any) {
	b.logger.Info(fmt.Sprintf(msg, args...), "component", name, "id", id)
}

func (b *neo4jLogBridge) Debugf(name string, id string, msg string, args ...any) {
	if b.logger.IsDebugEnabled() {
		b.logger.Debug(fmt.Sprintf(msg, args...), "component", name, "id", id)
	}
}
