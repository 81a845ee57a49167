package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcornwell/universal-machine/internal/engine"
	"github.com/rcornwell/universal-machine/internal/loader"
	"github.com/rcornwell/universal-machine/internal/segment"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <image.um>",
		Short: "Load and execute a UM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage(args[0])
		},
	}
}

// runImage is the shared body of "um run" and the bare "um <image>"
// shorthand: stdin/stdout are the process's own byte streams.
// runImageIO takes explicit streams so tests don't have to touch the
// real console.
func runImage(path string) error {
	return runImageIO(path, os.Stdin, os.Stdout)
}

func runImageIO(path string, in io.Reader, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return wrapError(kindOpenFailed, fmt.Errorf("um: cannot open %s: %w", path, err))
		}
		return wrapError(kindOpenFailed, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return wrapError(kindSizeUnknown, fmt.Errorf("um: cannot stat %s: %w", path, err))
	}
	if info.Size()%4 != 0 {
		return wrapError(kindTruncatedImage, loader.ErrTruncated)
	}

	store := segment.New(cfg.SegCapacity)
	if err := loader.Load(store, f); err != nil {
		return wrapError(kindTruncatedImage, err)
	}

	Logger.Info("loaded image", "path", path)

	m, err := engine.New(store, in, out)
	if err != nil {
		return wrapError(kindOther, err)
	}

	if err := m.Run(); err != nil {
		if errors.Is(err, engine.ErrFellOffProgram) {
			return wrapError(kindFellOffProgram, err)
		}
		return wrapError(kindOther, err)
	}

	Logger.Info("halted", "pc", m.PC())
	return nil
}
