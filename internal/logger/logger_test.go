package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleWritesToFile(t *testing.T) {
	var file bytes.Buffer
	l := slog.New(New(Options{File: &file, Mirror: &bytes.Buffer{}}))

	l.Info("loaded image", "path", "a.um")
	assert.Contains(t, file.String(), "loaded image")
	assert.Contains(t, file.String(), "path=a.um")
}

func TestHandleMirrorsWarnAndAboveByDefault(t *testing.T) {
	var mirror bytes.Buffer
	l := slog.New(New(Options{Mirror: &mirror}))

	l.Info("routine")
	assert.Empty(t, mirror.String(), "info should not reach the mirror without Verbose")

	l.Error("boom")
	assert.Contains(t, mirror.String(), "boom")
}

func TestHandleMirrorsEverythingWhenVerbose(t *testing.T) {
	var mirror bytes.Buffer
	l := slog.New(New(Options{Mirror: &mirror, Verbose: true}))

	l.Info("routine")
	assert.Contains(t, mirror.String(), "routine")
}

func TestSetVerboseTogglesAtRuntime(t *testing.T) {
	var mirror bytes.Buffer
	h := New(Options{Mirror: &mirror})
	l := slog.New(h)

	l.Info("before")
	require.Empty(t, mirror.String())

	h.SetVerbose(true)
	l.Info("after")
	assert.Contains(t, mirror.String(), "after")
}

func TestLevelFiltersBelowConfiguredLevel(t *testing.T) {
	var file bytes.Buffer
	l := slog.New(New(Options{File: &file, Level: slog.LevelWarn}))

	l.Info("should be dropped")
	assert.Empty(t, file.String())

	l.Warn("should appear")
	assert.Contains(t, file.String(), "should appear")
}
