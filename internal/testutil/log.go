package testutil

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

const (
	logLevelKey   = "level"
	logMessageKey = "msg"
	logTimeKey    = "ts"
	logNameKey    = "logger"
)

// LogEntry represents single [zap.Logger] entry.
type LogEntry struct {
	Level   zapcore.Level
	Message string
	// Integer values are represented as [json.Number].
	Fields map[string]any
}

// LogBuffer is a memory buffer for [zap.Logger] entries safe for
// concurrent writes.
type LogBuffer struct {
	t  testing.TB
	mu sync.Mutex
	b  zaptest.Buffer
}

// NewBufferedLogger returns buffered logger for testing.
//
// Entries with severity less than minLevel are never written.
func NewBufferedLogger(t testing.TB, minLevel zapcore.Level) (*zap.Logger, *LogBuffer) {
	lb := &LogBuffer{t: t}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.LevelKey = logLevelKey
	encCfg.MessageKey = logMessageKey
	encCfg.TimeKey = logTimeKey
	encCfg.NameKey = logNameKey

	zc := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(lb),
		minLevel,
	)

	return zap.New(zc), lb
}

// Write implements io.Writer.
func (x *LogBuffer) Write(p []byte) (int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.b.Write(p)
}

// Entries returns all written entries in order. Time field is dropped.
func (x *LogBuffer) Entries() []LogEntry {
	x.mu.Lock()
	lines := x.b.Lines()
	x.mu.Unlock()

	res := make([]LogEntry, len(lines))
	for i := range lines {
		dec := json.NewDecoder(strings.NewReader(lines[i]))
		dec.UseNumber()

		var m map[string]any
		require.NoError(x.t, dec.Decode(&m), i)

		lvl, ok := m[logLevelKey].(string)
		require.True(x.t, ok, i)

		var err error
		res[i].Level, err = zapcore.ParseLevel(lvl)
		require.NoError(x.t, err, i)

		res[i].Message, ok = m[logMessageKey].(string)
		require.True(x.t, ok, i)

		delete(m, logTimeKey)
		delete(m, logLevelKey)
		delete(m, logMessageKey)
		res[i].Fields = m
	}

	return res
}

// Filter returns entries with the given message.
func (x *LogBuffer) Filter(msg string) []LogEntry {
	var res []LogEntry
	for _, e := range x.Entries() {
		if e.Message == msg {
			res = append(res, e)
		}
	}
	return res
}

// AssertEmpty asserts that log is empty.
func (x *LogBuffer) AssertEmpty() {
	require.Empty(x.t, x.Entries())
}

// AssertSingle asserts that log has given entry only.
func (x *LogBuffer) AssertSingle(e LogEntry) {
	require.Equal(x.t, []LogEntry{e}, x.Entries())
}

// AssertContains asserts that log contains given entry.
func (x *LogBuffer) AssertContains(e LogEntry) {
	require.Contains(x.t, x.Entries(), e)
}

// AssertNoMessage asserts that log has no entries with the given message.
func (x *LogBuffer) AssertNoMessage(msg string) {
	require.Empty(x.t, x.Filter(msg), msg)
}
