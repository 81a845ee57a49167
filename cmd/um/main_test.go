package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcornwell/universal-machine/internal/runconfig"
	"github.com/rcornwell/universal-machine/internal/umasm"
)

func TestMain(m *testing.M) {
	cfg = runconfig.Default()
	Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	os.Exit(m.Run())
}

func TestRunImageExecutesToHalt(t *testing.T) {
	var b umasm.Builder
	p, ok := umasm.Find("print-six")
	require.True(t, ok)
	p.Build(&b)

	dir := t.TempDir()
	path := filepath.Join(dir, "print-six.um")
	require.NoError(t, os.WriteFile(path, b.Bytes(), 0o644))

	var out bytes.Buffer
	require.NoError(t, runImageIO(path, strings.NewReader(""), &out))
	assert.Equal(t, "6", out.String())
}

func TestRunImageMissingFileIsOpenFailed(t *testing.T) {
	err := runImage(filepath.Join(t.TempDir(), "does-not-exist.um"))
	require.Error(t, err)
	assert.Equal(t, int(kindOpenFailed), exitCodeFor(err))
}

func TestRunImageTruncatedIsTruncatedImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.um")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	err := runImage(path)
	require.Error(t, err)
	assert.Equal(t, int(kindTruncatedImage), exitCodeFor(err))
}

func TestRunImageFallingOffEndIsFellOffProgram(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noop.um")
	// An empty image leaves segment 0 with zero words: PC starts at 0,
	// which is already at the end, so the machine falls off immediately.
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	err := runImage(path)
	require.Error(t, err)
	assert.Equal(t, int(kindFellOffProgram), exitCodeFor(err))
}

func TestGenerateWritesImageAndSidecars(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generate("input", dir))

	assert.FileExists(t, filepath.Join(dir, "input.um"))
	assert.FileExists(t, filepath.Join(dir, "input.input"))
	assert.FileExists(t, filepath.Join(dir, "input.expected"))
}

func TestGenerateUnknownNameIsBadArgs(t *testing.T) {
	err := generate("does-not-exist", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, int(kindBadArgs), exitCodeFor(err))
}

func TestGenerateOmitsEmptySidecars(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generate("halt", dir))

	assert.FileExists(t, filepath.Join(dir, "halt.um"))
	assert.NoFileExists(t, filepath.Join(dir, "halt.input"))
	assert.NoFileExists(t, filepath.Join(dir, "halt.expected"))
}

func TestExitCodeForUnclassifiedErrorIsOne(t *testing.T) {
	assert.Equal(t, 1, exitCodeFor(assert.AnError))
}

func TestReportFailureLogsErrorMessage(t *testing.T) {
	prev := Logger
	defer func() { Logger = prev }()

	var buf bytes.Buffer
	Logger = slog.New(slog.NewTextHandler(&buf, nil))

	reportFailure(errors.New("um: cannot open missing.um"))
	assert.Contains(t, buf.String(), "um: cannot open missing.um")
}

func TestReportFailureFallsBackToStderrWhenLoggerIsNil(t *testing.T) {
	prev := Logger
	Logger = nil
	defer func() { Logger = prev }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	origStderr := os.Stderr
	os.Stderr = w

	reportFailure(errors.New("um: boom"))

	require.NoError(t, w.Close())
	os.Stderr = origStderr

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "um: boom")
}

func TestDisassembleFilePrintsOneLinePerWord(t *testing.T) {
	var b umasm.Builder
	p, ok := umasm.Find("halt")
	require.True(t, ok)
	p.Build(&b)

	dir := t.TempDir()
	path := filepath.Join(dir, "halt.um")
	require.NoError(t, os.WriteFile(path, b.Bytes(), 0o644))

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, disassembleFile(cmd, path))
	assert.Contains(t, out.String(), "HALT")
}

func TestDisassembleFileTruncatedIsTruncatedImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.um")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	cmd := &cobra.Command{}
	err := disassembleFile(cmd, path)
	require.Error(t, err)
	assert.Equal(t, int(kindTruncatedImage), exitCodeFor(err))
}
