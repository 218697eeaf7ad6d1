/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level defines a log level for a module logger.
type Level = zapcore.Level

// Log levels.
const (
	DEBUG   = zapcore.DebugLevel
	INFO    = zapcore.InfoLevel
	WARNING = zapcore.WarnLevel
	ERROR   = zapcore.ErrorLevel
	PANIC   = zapcore.PanicLevel
	FATAL   = zapcore.FatalLevel
)

const defaultLogLevel = INFO

var levels = newModuleLevels()

// Logger is a named, leveled logger.
type Logger struct {
	*zap.Logger
	module string
}

// New creates a logger for the given module. The level of the logger may be
// changed at any time with SetLevel.
func New(module string, opts ...zap.Option) *Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.Lock(os.Stderr),
		levels.get(module),
	)

	return &Logger{
		Logger: zap.New(core, opts...).Named(module),
		module: module,
	}
}

// SetLevel sets the log level for the given module.
func SetLevel(module string, level Level) {
	levels.set(module, level)
}

// SetDefaultLevel sets the default log level.
func SetDefaultLevel(level Level) {
	levels.setDefault(level)
}

// GetLevel returns the log level for the given module.
func GetLevel(module string) Level {
	return levels.get(module).Level()
}

// SetSpec sets the log levels for individual modules as well as the default
// log level. The format of the spec is as follows:
//
// module1=level1:module2=level2:module3=level3:defaultLevel
//
// Valid log levels are: error, warning, info, debug
func SetSpec(spec string) error {
	for _, field := range strings.Split(spec, ":") {
		split := strings.Split(field, "=")

		switch len(split) {
		case 1:
			level, err := ParseLevel(split[0])
			if err != nil {
				return fmt.Errorf("invalid default log level [%s]: %w", split[0], err)
			}

			SetDefaultLevel(level)
		case 2:
			level, err := ParseLevel(split[1])
			if err != nil {
				return fmt.Errorf("invalid log level [%s]: %w", split[1], err)
			}

			SetLevel(split[0], level)
		default:
			return fmt.Errorf("invalid log spec field: %s", field)
		}
	}

	return nil
}

// GetSpec returns the log spec which specifies the log level of each
// individual module as well as the default log level.
func GetSpec() string {
	var fields []string

	for module, level := range levels.all() {
		fields = append(fields, fmt.Sprintf("%s=%s", module, level))
	}

	sort.Strings(fields)

	return strings.Join(append(fields, levels.defaultLevel().String()), ":")
}

// ParseLevel parses a log level string.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warning", "warn":
		return WARNING, nil
	case "error":
		return ERROR, nil
	default:
		return defaultLogLevel, fmt.Errorf("unknown log level: %s", level)
	}
}

type moduleLevels struct {
	mutex    sync.RWMutex
	levels   map[string]zap.AtomicLevel
	explicit map[string]bool
	fallback Level
}

func newModuleLevels() *moduleLevels {
	return &moduleLevels{
		levels:   make(map[string]zap.AtomicLevel),
		explicit: make(map[string]bool),
		fallback: defaultLogLevel,
	}
}

func (l *moduleLevels) get(module string) zap.AtomicLevel {
	l.mutex.RLock()
	level, ok := l.levels[module]
	l.mutex.RUnlock()

	if ok {
		return level
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	if level, ok = l.levels[module]; !ok {
		level = zap.NewAtomicLevelAt(l.fallback)
		l.levels[module] = level
	}

	return level
}

func (l *moduleLevels) set(module string, level Level) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	atomicLevel, ok := l.levels[module]
	if !ok {
		atomicLevel = zap.NewAtomicLevelAt(level)
		l.levels[module] = atomicLevel
	}

	atomicLevel.SetLevel(level)
	l.explicit[module] = true
}

// setDefault changes the fallback level. Modules with an explicitly set level
// keep it; everything else follows the new default.
func (l *moduleLevels) setDefault(level Level) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.fallback = level

	for module, atomicLevel := range l.levels {
		if !l.explicit[module] {
			atomicLevel.SetLevel(level)
		}
	}
}

func (l *moduleLevels) defaultLevel() Level {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.fallback
}

func (l *moduleLevels) all() map[string]Level {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	snapshot := make(map[string]Level, len(l.levels))

	for module, level := range l.levels {
		snapshot[module] = level.Level()
	}

	return snapshot
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	return cfg
}
