package common

import (
	"fmt"
	"github.com/lni/dragonboat/v4/logger"
	"log"
	"os"
	"strings"
)

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// xgroupLogger implements the ILogger interface with custom formatting
type xgroupLogger struct {
	name   string
	level  logger.LogLevel
	logger *log.Logger
}

func (l *xgroupLogger) SetLevel(level logger.LogLevel) {
	l.level = level
}

func (l *xgroupLogger) Debugf(format string, args ...interface{}) {
	if l.level >= logger.DEBUG {
		l.log("DEBUG", format, args...)
	}
}

func (l *xgroupLogger) Infof(format string, args ...interface{}) {
	if l.level >= logger.INFO {
		l.log("INFO", format, args...)
	}
}

func (l *xgroupLogger) Warningf(format string, args ...interface{}) {
	if l.level >= logger.WARNING {
		l.log("WARN", format, args...)
	}
}

func (l *xgroupLogger) Errorf(format string, args ...interface{}) {
	if l.level >= logger.ERROR {
		l.log("ERROR", format, args...)
	}
}

func (l *xgroupLogger) Panicf(format string, args ...interface{}) {
	if l.level >= logger.CRITICAL {
		panic(fmt.Sprintf(format, args...))
	}
}

// log formats and writes a log message. this internal helper is used by the public methods
func (l *xgroupLogger) log(levelStr string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-10s | %s", levelStr, l.name, message)
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// CreateLogger implements the logger.Factory interface.
// Logs are written to stderr so that stdout stays reserved for command output.
// Package loggers start at their default level (see DefaultLogLevels).
func CreateLogger(pkgName string) logger.ILogger {
	stdLogger := log.New(os.Stderr, "", log.Ldate|log.Ltime)

	level, ok := defaultLevels[pkgName]
	if !ok {
		level = logger.WARNING
	}
	return &xgroupLogger{
		name:   pkgName,
		level:  level,
		logger: stdLogger,
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// Names of the package loggers used in this module
const (
	LoggerGrouper   = "grouper"
	LoggerQueue     = "queue"
	LoggerContainer = "container"
	LoggerCLI       = "cli"
)

// defaultLevels: sweeps and spills are only worth a line when something goes
// wrong, containers never log below error, the CLI reports a summary per run.
var defaultLevels = map[string]logger.LogLevel{
	LoggerGrouper:   logger.WARNING,
	LoggerQueue:     logger.WARNING,
	LoggerContainer: logger.ERROR,
	LoggerCLI:       logger.INFO,
}

// DefaultLogLevels returns a copy of the default level of every package logger
func DefaultLogLevels() map[string]logger.LogLevel {
	levels := make(map[string]logger.LogLevel, len(defaultLevels))
	for name, level := range defaultLevels {
		levels[name] = level
	}
	return levels
}

// ParseLogLevel converts a string level to logger.LogLevel
func ParseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logger.DEBUG, nil
	case "info":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return 0, Errorf(RetCInvalidConfiguration, "invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// ParseLogLevels resolves a level setting to the level of every package
// logger. The setting is a comma separated list of a level for all
// packages and pkg=level overrides, e.g. "warn,queue=debug". Overrides win
// regardless of their position. An empty setting yields the defaults.
func ParseLogLevels(setting string) (map[string]logger.LogLevel, error) {
	levels := DefaultLogLevels()
	overrides := make(map[string]logger.LogLevel)

	for _, part := range strings.Split(setting, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, levelStr, isOverride := strings.Cut(part, "=")
		level, err := ParseLogLevel(levelStr)
		if !isOverride {
			level, err = ParseLogLevel(name)
		}
		if err != nil {
			return nil, err
		}

		if !isOverride {
			for pkg := range levels {
				levels[pkg] = level
			}
			continue
		}
		name = strings.TrimSpace(name)
		if _, ok := levels[name]; !ok {
			return nil, Errorf(RetCInvalidConfiguration, "unknown logger %q in log level %q", name, setting)
		}
		overrides[name] = level
	}

	for name, level := range overrides {
		levels[name] = level
	}
	return levels, nil
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// InitLoggers installs the custom logger factory and sets the level of all
// package loggers according to setting (see ParseLogLevels)
func InitLoggers(setting string) error {
	levels, err := ParseLogLevels(setting)
	if err != nil {
		return err
	}

	logger.SetLoggerFactory(CreateLogger)

	for name, level := range levels {
		logger.GetLogger(name).SetLevel(level)
	}
	return nil
}
