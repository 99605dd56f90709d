package log

import (
	"bytes"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", "text", &buf)

	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("country", "Vanuatu").Info("fetched")
	assert.Contains(t, buf.String(), "country=Vanuatu")
	assert.Contains(t, buf.String(), "msg=fetched")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", "json", &buf)
	require.NoError(t, err)

	logger.WithField("component", "api").Warn("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "api", entry["component"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "hello", entry["msg"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("error", "text", &buf)
	require.NoError(t, err)

	logger.Info("suppressed")
	assert.Empty(t, buf.String())
}

func TestNew_InvalidInputs(t *testing.T) {
	_, err := New("chatty", "text", io.Discard)
	assert.Error(t, err)

	_, err = New("info", "xml", io.Discard)
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.NotPanics(t, func() { logger.Error("dropped") })
	assert.Equal(t, io.Discard, logger.Out)
}

// lockedBuffer guards a buffer written from the logrus pipe goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Contains(s string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Contains(b.buf.Bytes(), []byte(s))
}

func TestNewStdErrorLogger(t *testing.T) {
	buf := &lockedBuffer{}
	logger, err := New("info", "text", buf)
	require.NoError(t, err)

	std := NewStdErrorLogger(logger.WithField("component", "mcp"))
	std.Println("transport closed")

	// The pipe writer hands lines to logrus on a goroutine.
	assert.Eventually(t, func() bool {
		return buf.Contains("transport closed")
	}, time.Second, 10*time.Millisecond)
}
