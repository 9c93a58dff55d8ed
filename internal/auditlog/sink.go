// Package auditlog writes the append-only synchronization log.
//
// Every entry is a single line of the form "[<local-timestamp>] <message>".
// Lines are never rewritten; the file is created on demand if it disappears.
package auditlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const TimeLayout = "2006-01-02 15:04:05"

type Sink struct {
	path string
	log  *zap.Logger
}

// New prepares the log file at path, creating it (and its parent
// directory) when absent. Existing content is never truncated.
func New(fs afero.Fs, path string) (*Sink, error) {
	if path == "" {
		return nil, fmt.Errorf("log file path is empty")
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}

	w := &appendFile{fs: fs, path: path}
	if err := w.touch(); err != nil {
		return nil, err
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.Lock(w),
		zapcore.DebugLevel,
	)

	return &Sink{
		path: path,
		log:  zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr))),
	}, nil
}

// Append records a single line. Concurrent callers are serialised.
func (s *Sink) Append(message string) {
	s.log.Info(message)
}

func (s *Sink) Path() string {
	return s.path
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "ts",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + t.Local().Format(TimeLayout) + "]")
		},
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// appendFile reopens the target for every write so a log removed while
// running is recreated on the next entry.
type appendFile struct {
	fs   afero.Fs
	path string
}

func (a *appendFile) touch() error {
	f, err := a.fs.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	return f.Close()
}

func (a *appendFile) Write(p []byte) (int, error) {
	f, err := a.fs.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}

	n, err := f.Write(p)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	return n, err
}

func (a *appendFile) Sync() error {
	return nil
}
