/*
 * UM - Image loader
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

// Package loader reads a UM program image — a sequence of big-endian
// 32-bit words with no header or padding — into segment 0 of a fresh
// segment.Store.
package loader

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/rcornwell/universal-machine/internal/segment"
)

// ErrTruncated is returned when the image's length is not a multiple
// of four bytes.
var ErrTruncated = fmt.Errorf("um: improper file size")

// Load reads all of r and populates segment 0 of store with the
// decoded program. store must be freshly created (no prior Alloc
// calls), since the loader relies on its first allocation landing on
// address 0.
func Load(store *segment.Store, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("um: reading image: %w", err)
	}
	return LoadBytes(store, data)
}

// LoadBytes populates segment 0 of store from an in-memory image,
// for callers (such as tests) that already hold the image in memory.
func LoadBytes(store *segment.Store, data []byte) error {
	if len(data)%4 != 0 {
		return ErrTruncated
	}

	n := uint32(len(data) / 4)
	addr := store.Alloc(n)
	if addr != 0 {
		return fmt.Errorf("um: internal error: first segment allocated at %d, not 0", addr)
	}

	for i := uint32(0); i < n; i++ {
		word := binary.BigEndian.Uint32(data[i*4 : i*4+4])
		if err := store.Set(addr, i, word); err != nil {
			return fmt.Errorf("um: writing word %d: %w", i, err)
		}
	}
	return nil
}
