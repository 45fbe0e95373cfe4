// Package logx is the shared leveled logger for the portal.
package logx

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync/atomic"
)

// Level representa el nivel de severidad del log
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var currentLevel atomic.Int32

var std = log.New(os.Stdout, "", log.LstdFlags)

func init() {
	currentLevel.Store(int32(LevelInfo))
}

// SetLevel establece el nivel mínimo de log
func SetLevel(l Level) {
	currentLevel.Store(int32(l))
}

// GetLevel retorna el nivel actual
func GetLevel() Level {
	return Level(currentLevel.Load())
}

func levelName(l Level) string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "?"
	}
}

func output(l Level, fields Fields, msg string) {
	if l < GetLevel() {
		return
	}
	if len(fields) == 0 {
		std.Printf("[%s] %s", levelName(l), msg)
		return
	}
	std.Printf("[%s] %s %s", levelName(l), msg, formatFields(fields))
}

func formatFields(fields Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Fields son pares clave/valor adjuntos a una entrada de log
type Fields map[string]any

// Entry es un logger con campos pre-asociados
type Entry struct {
	fields Fields
}

// WithFields crea una entrada de log con campos estructurados
func WithFields(fields Fields) *Entry {
	return &Entry{fields: fields}
}

func (e *Entry) Debug(msg string)                  { output(LevelDebug, e.fields, msg) }
func (e *Entry) Info(msg string)                   { output(LevelInfo, e.fields, msg) }
func (e *Entry) Warn(msg string)                   { output(LevelWarn, e.fields, msg) }
func (e *Entry) Error(msg string)                  { output(LevelError, e.fields, msg) }
func (e *Entry) Debugf(format string, args ...any) { output(LevelDebug, e.fields, fmt.Sprintf(format, args...)) }
func (e *Entry) Infof(format string, args ...any)  { output(LevelInfo, e.fields, fmt.Sprintf(format, args...)) }
func (e *Entry) Warnf(format string, args ...any)  { output(LevelWarn, e.fields, fmt.Sprintf(format, args...)) }
func (e *Entry) Errorf(format string, args ...any) { output(LevelError, e.fields, fmt.Sprintf(format, args...)) }

// ============================================================================
// Package-level helpers
// ============================================================================

func Debug(msg string) { output(LevelDebug, nil, msg) }
func Info(msg string)  { output(LevelInfo, nil, msg) }
func Warn(msg string)  { output(LevelWarn, nil, msg) }
func Error(msg string) { output(LevelError, nil, msg) }

func Debugf(format string, args ...any) { output(LevelDebug, nil, fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { output(LevelInfo, nil, fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { output(LevelWarn, nil, fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { output(LevelError, nil, fmt.Sprintf(format, args...)) }

// Fatal loguea y termina el proceso
func Fatal(msg string) {
	output(LevelError, nil, msg)
	os.Exit(1)
}

// Fatalf loguea con formato y termina el proceso
func Fatalf(format string, args ...any) {
	output(LevelError, nil, fmt.Sprintf(format, args...))
	os.Exit(1)
}
