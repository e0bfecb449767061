package logging

import (
	"io"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

// Appender is an output for log entries. This is a subset of the `zapcore.Core` interface, so
// zap cores such as the test observer can be added directly.
type Appender interface {
	Write(zapcore.Entry, []zapcore.Field) error
	Sync() error
}

// writerAppender encodes entries as tab separated console lines.
type writerAppender struct {
	w       io.Writer
	encoder zapcore.Encoder
}

// NewWriterAppender returns an appender writing console formatted lines to w.
func NewWriterAppender(w io.Writer) Appender {
	return &writerAppender{w: w, encoder: zapcore.NewConsoleEncoder(NewLoggerConfig())}
}

// NewStdoutAppender returns an appender writing console formatted lines to stdout.
func NewStdoutAppender() Appender {
	return NewWriterAppender(os.Stdout)
}

func (a *writerAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	buf, err := a.encoder.EncodeEntry(entry, fields)
	if err != nil {
		return err
	}
	defer buf.Free()
	_, err = a.w.Write(buf.Bytes())
	return err
}

func (a *writerAppender) Sync() error {
	if syncer, ok := a.w.(zapcore.WriteSyncer); ok && a.w != os.Stdout {
		return syncer.Sync()
	}
	return nil
}

type testAppender struct {
	tb testing.TB
}

// NewTestAppender returns an appender that logs through `tb.Log`, so each line is attributed to
// the test that produced it.
func NewTestAppender(tb testing.TB) Appender {
	return &testAppender{tb}
}

// Write logs one tab separated line: time, level, logger, caller, message, then fields as JSON.
func (tapp *testAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	tapp.tb.Helper()
	parts := []string{
		entry.Time.Format(DefaultTimeFormatStr),
		strings.ToUpper(entry.Level.String()),
		entry.LoggerName,
	}
	if entry.Caller.Defined {
		parts = append(parts, entry.Caller.TrimmedPath())
	}
	parts = append(parts, entry.Message)

	var err error
	if len(fields) > 0 {
		// An empty entry leaves only the fields, in call order.
		enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{SkipLineEnding: true})
		buf, encErr := enc.EncodeEntry(zapcore.Entry{}, fields)
		if encErr != nil {
			err = encErr
		} else {
			parts = append(parts, buf.String())
			buf.Free()
		}
	}
	tapp.tb.Log(strings.Join(parts, "\t"))
	return err
}

// Sync is a no-op.
func (tapp *testAppender) Sync() error {
	return nil
}

// appenderCore exposes a plain Appender as a zap core so Desugar can write to it.
type appenderCore struct {
	zapcore.LevelEnabler
	appender Appender
	fields   []zapcore.Field
}

func (c *appenderCore) With(fields []zapcore.Field) zapcore.Core {
	return &appenderCore{
		LevelEnabler: c.LevelEnabler,
		appender:     c.appender,
		fields:       append(append([]zapcore.Field{}, c.fields...), fields...),
	}
}

func (c *appenderCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

func (c *appenderCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if len(c.fields) == 0 {
		return c.appender.Write(entry, fields)
	}
	return c.appender.Write(entry, append(append([]zapcore.Field{}, c.fields...), fields...))
}

func (c *appenderCore) Sync() error {
	return c.appender.Sync()
}
