package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestErrorIncludesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Name: "test", Level: zerolog.DebugLevel, Output: buf})

	ctx := log.WithField(context.Background(), "key", "megamart_cart")
	log.Error(ctx, "save failed", errors.New("quota exceeded"))

	assert.Contains(t, buf.String(), `"key":"megamart_cart"`)
	assert.Contains(t, buf.String(), `"error":"quota exceeded"`)
	assert.Contains(t, buf.String(), `"component":"test"`)
}

func TestLevelFiltersDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Name: "test", Level: zerolog.InfoLevel, Output: buf})

	log.Debug(context.Background(), "hidden")
	assert.Empty(t, buf.String())

	log.Info(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNilLoggerIsNoop(t *testing.T) {
	var log *Logger
	ctx := log.WithFields(context.Background(), map[string]any{"a": 1})

	assert.NotPanics(t, func() {
		log.Info(ctx, "x")
		log.Warn(ctx, "x", errors.New("y"))
		log.Error(ctx, "x", nil)
	})
}

func TestParseLevelDefaults(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("invalid"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
}

func TestNopIgnoresFieldsFromAnotherLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	live := New(Options{Name: "real", Level: zerolog.DebugLevel, Output: buf})
	ctx := live.WithField(context.Background(), "key", "megamart_cart")

	Nop().Error(ctx, "should be discarded", errors.New("boom"))
	assert.Empty(t, buf.String())
}

func TestFieldsStayWithTheirLogger(t *testing.T) {
	first := &bytes.Buffer{}
	second := &bytes.Buffer{}
	a := New(Options{Name: "a", Output: first})
	b := New(Options{Name: "b", Output: second})

	ctx := a.WithField(context.Background(), "store", "cart")
	b.Info(ctx, "from b")
	a.Info(ctx, "from a")

	assert.NotContains(t, second.String(), `"store":"cart"`)
	assert.Contains(t, second.String(), `"component":"b"`)
	assert.Contains(t, first.String(), `"store":"cart"`)
}

func TestNewKeepsTimeFormat(t *testing.T) {
	New(Options{Name: "first", Output: &bytes.Buffer{}})
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	defer func() { zerolog.TimeFieldFormat = time.RFC3339Nano }()

	New(Options{Name: "second", Output: &bytes.Buffer{}})
	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
}
