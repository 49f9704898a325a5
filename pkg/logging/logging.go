// Package logging provides the leveled JSON logger shared by bizdesk packages.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

// Logger is the logging contract used across the store, collection and auth
// layers. keyvals are alternating key/value pairs.
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

const header = `{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}"}`

type gommonLogger struct {
	l *log.Logger
}

var _ Logger = (*gommonLogger)(nil)

// New returns a Logger writing JSON lines to w at the given level
// (debug, info, warn, error, off).
func New(w io.Writer, level string) Logger {
	l := log.New("bizdesk")
	l.SetOutput(w)
	l.SetHeader(header)
	l.SetLevel(ParseLevel(level))
	return &gommonLogger{l: l}
}

// ParseLevel maps a config string onto a gommon level, defaulting to INFO.
func ParseLevel(level string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off", "none":
		return log.OFF
	default:
		return log.INFO
	}
}

func (g *gommonLogger) Debug(msg string, keyvals ...interface{}) {
	g.l.Debugj(fields(msg, keyvals))
}

func (g *gommonLogger) Info(msg string, keyvals ...interface{}) {
	g.l.Infoj(fields(msg, keyvals))
}

func (g *gommonLogger) Warn(msg string, keyvals ...interface{}) {
	g.l.Warnj(fields(msg, keyvals))
}

func (g *gommonLogger) Error(msg string, keyvals ...interface{}) {
	g.l.Errorj(fields(msg, keyvals))
}

func fields(msg string, keyvals []interface{}) log.JSON {
	j := log.JSON{"message": msg}
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if i+1 >= len(keyvals) {
			j[key] = nil
			break
		}
		v := keyvals[i+1]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		j[key] = v
	}
	return j
}

type nop struct{}

func (nop) Debug(string, ...interface{}) {}
func (nop) Info(string, ...interface{})  {}
func (nop) Warn(string, ...interface{})  {}
func (nop) Error(string, ...interface{}) {}

// Nop discards everything.
func Nop() Logger {
	return nop{}
}
