// Package audit writes the clerk-facing activity log: one timestamped line per action,
// appended to a plain UTF-8 text file that the application never reads back.
package audit

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp layout of every line, brackets included.
const TimeLayout = "[2006-01-02 15:04:05]"

// ErrorPrefix marks failed actions.
const ErrorPrefix = "ERROR: "

var flatten = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// appendFile is a WriteSyncer that holds no handle between writes: each write opens the
// file in append mode and closes it before returning.
type appendFile struct {
	mu   sync.Mutex
	path string
}

func (f *appendFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fh, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := fh.Write(p)
	if cerr := fh.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func (f *appendFile) Sync() error { return nil }

// Log is the append-only action log.
type Log struct {
	path   string
	logger *zap.Logger
}

// New returns a Log appending to path. The file is created on the first record.
// Append failures are reported on stderr and never returned.
func New(path string) *Log {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		MessageKey:       "msg",
		EncodeTime:       zapcore.TimeEncoderOfLayout(TimeLayout),
		ConsoleSeparator: " ",
		LineEnding:       zapcore.DefaultLineEnding,
	})
	core := zapcore.NewCore(enc, &appendFile{path: path}, zapcore.DebugLevel)
	return &Log{path: path, logger: zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr)))}
}

// Path returns the file the log appends to.
func (l *Log) Path() string { return l.path }

// Record appends one line for message. Embedded line breaks are flattened so an entry
// always occupies exactly one line.
func (l *Log) Record(message string) {
	l.logger.Info(flatten.Replace(message))
}

// Recordf formats and records a line.
func (l *Log) Recordf(format string, args ...any) {
	l.Record(fmt.Sprintf(format, args...))
}

// Errorf records a line prefixed with ERROR:.
func (l *Log) Errorf(format string, args ...any) {
	l.Record(ErrorPrefix + fmt.Sprintf(format, args...))
}
