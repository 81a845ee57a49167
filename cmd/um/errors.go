package main

import (
	"errors"
	"fmt"

	"github.com/rcornwell/universal-machine/internal/engine"
	"github.com/rcornwell/universal-machine/internal/loader"
)

// kind classifies a CLI failure the way the error taxonomy distinguishes
// them: every kind prints a one-line message to stderr and maps to a
// distinct exit code, so scripts driving um can tell failures apart
// without parsing text.
type kind int

const (
	kindBadArgs kind = iota + 1
	kindOpenFailed
	kindSizeUnknown
	kindTruncatedImage
	kindFellOffProgram
	kindOther
)

type cliError struct {
	kind kind
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func wrapError(k kind, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{kind: k, err: err}
}

func badArgs(format string, a ...any) error {
	return &cliError{kind: kindBadArgs, err: fmt.Errorf(format, a...)}
}

// exitCodeFor maps a returned error to a process exit status. Unclassified
// errors (including cobra's own flag-parsing errors) exit 1.
func exitCodeFor(err error) int {
	var ce *cliError
	if errors.As(err, &ce) {
		return int(ce.kind)
	}
	if errors.Is(err, loader.ErrTruncated) {
		return int(kindTruncatedImage)
	}
	if errors.Is(err, engine.ErrFellOffProgram) {
		return int(kindFellOffProgram)
	}
	return 1
}
