// Package log provides a leveled logger for command-line tools.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Verbosity is the minimum level a logger writes.
type Verbosity int

const (
	// Debug writes every log.
	Debug Verbosity = iota
	// Info writes info, warn, error, and fatal logs.
	Info
	// Warn writes warn, error, and fatal logs.
	Warn
	// Error writes error and fatal logs.
	Error
	// None writes nothing except fatal logs.
	None
)

func (v Verbosity) String() string {
	switch v {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case None:
		return "NONE"
	default:
		return "INVALID"
	}
}

var (
	debugLabel = color.New(color.FgMagenta).SprintFunc()
	infoLabel  = color.New(color.FgBlue).SprintFunc()
	warnLabel  = color.New(color.FgYellow).SprintFunc()
	errorLabel = color.New(color.FgRed).SprintFunc()
	fatalLabel = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Logger is a leveled logger.
type Logger interface {
	ChangeVerbosity(Verbosity)
	Debug(...interface{})
	Debugf(string, ...interface{})
	Info(...interface{})
	Infof(string, ...interface{})
	Warn(...interface{})
	Warnf(string, ...interface{})
	Error(...interface{})
	Errorf(string, ...interface{})
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

type logger struct {
	sync.Mutex
	name      string
	verbosity Verbosity
	out       io.Writer
	exit      func(int)
}

// New creates a logger writing to standard error.
func New(v Verbosity) Logger {
	return NewWithWriter(v, os.Stderr)
}

// NewWithWriter creates a logger writing to the given writer.
func NewWithWriter(v Verbosity, w io.Writer) Logger {
	return &logger{
		name:      "gitch",
		verbosity: v,
		out:       w,
		exit:      os.Exit,
	}
}

func (l *logger) ChangeVerbosity(v Verbosity) {
	l.Lock()
	defer l.Unlock()

	l.verbosity = v
}

func (l *logger) write(v Verbosity, label string, msg string) {
	l.Lock()
	defer l.Unlock()

	// Fatal logs are always written
	if v != None && v < l.verbosity {
		return
	}

	fmt.Fprintf(l.out, "%s %s %s\n", l.name, label, msg)
}

func (l *logger) Debug(args ...interface{}) {
	l.write(Debug, debugLabel("DEBUG"), fmt.Sprint(args...))
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.write(Debug, debugLabel("DEBUG"), fmt.Sprintf(format, args...))
}

func (l *logger) Info(args ...interface{}) {
	l.write(Info, infoLabel("INFO"), fmt.Sprint(args...))
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.write(Info, infoLabel("INFO"), fmt.Sprintf(format, args...))
}

func (l *logger) Warn(args ...interface{}) {
	l.write(Warn, warnLabel("WARNING"), fmt.Sprint(args...))
}

func (l *logger) Warnf(format string, args ...interface{}) {
	l.write(Warn, warnLabel("WARNING"), fmt.Sprintf(format, args...))
}

func (l *logger) Error(args ...interface{}) {
	l.write(Error, errorLabel("ERROR"), fmt.Sprint(args...))
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.write(Error, errorLabel("ERROR"), fmt.Sprintf(format, args...))
}

func (l *logger) Fatal(args ...interface{}) {
	l.write(None, fatalLabel("FATAL"), fmt.Sprint(args...))
	l.exit(1)
}

func (l *logger) Fatalf(format string, args ...interface{}) {
	l.write(None, fatalLabel("FATAL"), fmt.Sprintf(format, args...))
	l.exit(1)
}
