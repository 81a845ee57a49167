/*
 * UM - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcornwell/universal-machine/internal/logger"
	"github.com/rcornwell/universal-machine/internal/runconfig"
)

var Logger *slog.Logger

var (
	optConfig string
	optLog    string
	optDebug  bool
	cfg       runconfig.Config
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		reportFailure(err)
		os.Exit(exitCodeFor(err))
	}
}

// reportFailure prints err's one-line message to the error stream.
// SilenceErrors on the root command suppresses cobra's own stderr
// print, so this is the only place a failure is ever reported.
// Logger may still be nil if setup itself failed before the handler
// was built, in which case the message goes straight to os.Stderr.
func reportFailure(err error) {
	if Logger != nil {
		Logger.Error(err.Error())
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "um [image.um]",
		Short:         "Universal Machine emulator",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		// A bare "um <image>" is shorthand for "um run <image>";
		// "um" with no args shows help.
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runImage(args[0])
		},
	}

	root.PersistentFlags().StringVarP(&optConfig, "config", "c", "", "Configuration file")
	root.PersistentFlags().StringVarP(&optLog, "log", "l", "", "Log file")
	root.PersistentFlags().BoolVarP(&optDebug, "debug", "d", false, "Echo log lines to stderr")

	root.AddCommand(runCmd(), disasmCmd(), genCmd())
	return root
}

// setup loads host configuration and wires up the slog logger the way
// every subcommand expects it: before any of them touches the image
// file or the engine.
func setup() error {
	var err error
	cfg, err = runconfig.Load(optConfig)
	if err != nil {
		return err
	}

	logPath := optLog
	if logPath == "" {
		logPath = cfg.LogFile
	}

	var file *os.File
	if logPath != "" {
		file, err = os.Create(logPath)
		if err != nil {
			return fmt.Errorf("um: opening log file: %w", err)
		}
	}

	level := new(slog.LevelVar)
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level.Set(slog.LevelInfo)
	}

	Logger = slog.New(logger.New(logger.Options{
		File:    file,
		Level:   level,
		Verbose: optDebug || cfg.DebugToStderr,
	}))
	slog.SetDefault(Logger)
	return nil
}
