package notify

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type serverErr struct{ msg string }

func (e serverErr) Error() string       { return "server: " + e.msg }
func (e serverErr) UserMessage() string { return e.msg }

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Out of stock", MessageOf(serverErr{"Out of stock"}, "Failed to add"))
	assert.Equal(t, "Out of stock", MessageOf(fmt.Errorf("wrapped: %w", serverErr{"Out of stock"}), "Failed to add"))
	assert.Equal(t, "Failed to add", MessageOf(serverErr{""}, "Failed to add"))
	assert.Equal(t, "Failed to add", MessageOf(errors.New("boom"), "Failed to add"))
	assert.Equal(t, "Failed to add", MessageOf(nil, "Failed to add"))
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.Success("Added to cart")
	w.Error("Failed to fetch products")

	assert.Equal(t, "✔ Added to cart\n✖ Failed to fetch products\n", buf.String())
}

func TestLogAndMulti(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	rec := &Recorder{}
	n := Multi{Log{L: zap.New(core)}, rec}

	n.Success("ok")
	n.Error("bad")

	logs := observed.TakeAll()
	require.Len(t, logs, 2)
	assert.Equal(t, "ok", logs[0].ContextMap()["message"])
	assert.Equal(t, zapcore.WarnLevel, logs[1].Level)

	assert.Equal(t, []Message{{LevelSuccess, "ok"}, {LevelError, "bad"}}, rec.Messages())
	assert.Equal(t, Message{LevelError, "bad"}, rec.Last())

	rec.Reset()
	assert.Empty(t, rec.Messages())
	assert.Equal(t, Message{}, rec.Last())
}

func TestReported(t *testing.T) {
	base := serverErr{"Out of stock"}
	err := Reported(base)

	assert.True(t, IsReported(err))
	assert.True(t, IsReported(fmt.Errorf("add: %w", err)))
	assert.False(t, IsReported(base))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, base.Error(), err.Error())
	assert.Equal(t, "Out of stock", MessageOf(err, "fallback"))
	assert.NoError(t, Reported(nil))
}
