/*
 * UM - Wrapper for slog
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

// Package logger provides the slog.Handler the um binary installs as its
// default logger: every record is rendered once and mirrored to up to two
// destinations, a persistent log file and a console stream.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// timeLayout is the rendered timestamp format for every log line.
const timeLayout = "2006/01/02 15:04:05"

// Options configures a Handler. Mirror is the stream a loud-enough record
// is echoed to in addition to File; it defaults to os.Stderr when nil.
type Options struct {
	File    io.Writer
	Mirror  io.Writer
	Level   slog.Leveler
	Verbose bool // mirror every record, not only Warn-and-above
}

// Handler tees rendered slog records to a log file and, for Warn-level and
// above (or every record, when Verbose is set), to a mirror stream.
type Handler struct {
	mu     *sync.Mutex
	sink   slog.Handler
	file   io.Writer
	mirror io.Writer
	all    bool
}

// New builds a Handler from opts. A nil opts.File disables the file tee.
func New(opts Options) *Handler {
	mirror := opts.Mirror
	if mirror == nil {
		mirror = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts.Level != nil {
		level = opts.Level
	}

	return &Handler{
		mu:     &sync.Mutex{},
		sink:   slog.NewTextHandler(opts.File, &slog.HandlerOptions{Level: level}),
		file:   opts.File,
		mirror: mirror,
		all:    opts.Verbose,
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.sink.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{mu: h.mu, sink: h.sink.WithAttrs(attrs), file: h.file, mirror: h.mirror, all: h.all}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{mu: h.mu, sink: h.sink.WithGroup(name), file: h.file, mirror: h.mirror, all: h.all}
}

// Handle renders r as a single line, writes it to the file (if any), and
// mirrors it when the record is loud enough to warrant a console echo.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	line := h.render(r)

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	if h.file != nil {
		_, err = h.file.Write(line)
	}
	if h.all || r.Level >= slog.LevelWarn {
		if _, werr := h.mirror.Write(line); err == nil {
			err = werr
		}
	}
	return err
}

func (h *Handler) render(r slog.Record) []byte {
	parts := make([]string, 0, r.NumAttrs()+3)
	parts = append(parts, r.Time.Format(timeLayout), r.Level.String()+":", r.Message)

	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s=%s", a.Key, a.Value))
		return true
	})

	return []byte(strings.Join(parts, " ") + "\n")
}

// SetVerbose toggles whether every record is mirrored rather than only
// Warn-and-above ones. um's --debug flag sets the same switch at
// startup through Options.Verbose.
func (h *Handler) SetVerbose(verbose bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.all = verbose
}
