// Package log is the process wide logging facility. It wraps logrus with the
// small field-oriented API the rest of sxredder uses, so packages never import
// logrus directly.
package log

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	serr "sxredder/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value pair
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes structured entries. The zero value is not usable; build one
// with NewLogger or Discard.
type Logger struct {
	base  *logrus.Logger
	entry *logrus.Entry
	file  *os.File
	level logrus.Level
}

// Option configures a Logger
type Option func(*options)

type options struct {
	out   io.Writer
	json  bool
	file  string
	level logrus.Level
}

// WithOutput sends log entries to w
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to the JSON formatter
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile appends log entries to the file at path, creating parent
// directories when needed. It replaces any WithOutput writer.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithVerbose selects info level when verbose is set and warn otherwise.
func WithVerbose(verbose bool) Option {
	return func(o *options) {
		if verbose {
			o.level = logrus.InfoLevel
		} else {
			o.level = logrus.WarnLevel
		}
	}
}

// NewLogger builds a logger. Without options it writes text entries at info
// level to stderr.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stderr, level: logrus.InfoLevel}
	for _, opt := range opts {
		opt(&o)
	}

	base := logrus.New()
	base.SetLevel(o.level)
	if isDebug {
		base.SetLevel(logrus.DebugLevel)
	}

	l := &Logger{base: base, level: o.level}

	out := o.out
	if o.file != "" {
		if err := os.MkdirAll(filepath.Dir(o.file), 0o700); err == nil {
			if f, err := os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
				l.file = f
				out = f
			}
		}
	}
	base.SetOutput(out)

	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	l.entry = logrus.NewEntry(base)
	return l
}

// Discard returns a logger that drops everything. Core components use it when
// no logger is injected.
func Discard() *Logger {
	return NewLogger(WithOutput(io.Discard))
}

// Configure replaces the global logger
func Configure(opts ...Option) {
	mu.Lock()
	defer mu.Unlock()
	old := logger
	logger = NewLogger(opts...)
	if old != nil && old.file != nil {
		old.file.Close()
	}
}

// Close releases the file held by the global logger, if any
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logger.file == nil {
		return nil
	}
	err := logger.file.Close()
	logger.file = nil
	logger.base.SetOutput(io.Discard)
	return err
}

// Default returns the global logger
func Default() *Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// SetDebug toggles debug level on the global logger and on loggers created
// afterwards.
func SetDebug(debug bool) {
	mu.Lock()
	defer mu.Unlock()
	isDebug = debug
	if debug {
		logger.base.SetLevel(logrus.DebugLevel)
	} else {
		logger.base.SetLevel(logger.level)
	}
}

// With returns a child logger carrying the given fields
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{base: l.base, entry: l.entry.WithFields(data), level: l.level}
}

// WithError returns a child logger describing err. Typed application errors
// contribute their kind and path or parameter.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l.With(F("error", "<nil>"))
	}
	fields := []Field{F("error", err.Error())}
	if kind := serr.KindOf(err); kind != serr.Unknown {
		fields = append(fields, F("error_kind", kind.String()))
	}
	var eraseErr *serr.EraseError
	var fileErr *serr.FileError
	var configErr *serr.ConfigError
	switch {
	case serr.As(err, &eraseErr):
		fields = append(fields, F("path", eraseErr.Path()), F("pass", eraseErr.Pass()), F("written", eraseErr.Written()))
	case serr.As(err, &fileErr):
		fields = append(fields, F("path", fileErr.Path()))
	case serr.As(err, &configErr):
		fields = append(fields, F("param", configErr.Param()))
	}
	return l.With(fields...)
}

func (l *Logger) Debug(args ...interface{})                 { l.entry.Debug(args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *Logger) Info(args ...interface{})                  { l.entry.Info(args...) }
func (l *Logger) Warn(args ...interface{})                  { l.entry.Warn(args...) }
func (l *Logger) Error(args ...interface{})                 { l.entry.Error(args...) }

// LogWithError returns the global logger describing err
func LogWithError(err error) *Logger {
	return Default().WithError(err)
}

// LogError logs err at error level with a message
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

func Info(args ...interface{})                  { Default().Info(args...) }
func Debug(args ...interface{})                 { Default().Debug(args...) }
func Debugf(format string, args ...interface{}) { Default().Debugf(format, args...) }
