/*
 * UM - Segmented main memory
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

// Package segment implements the UM's segmented main memory: a map
// from small integer addresses to variable-length word arrays, with
// LIFO recycling of freed addresses and whole-segment duplication
// into address 0.
package segment

import "fmt"

// Address identifies a live segment. It is an opaque handle, not a
// word pointer; address 0 always exists for the life of the Store.
type Address uint32

// Word is a single 32-bit UM memory cell.
type Word = uint32

// entry is the per-address metadata record. words is nil for a freed
// address; the slice itself, not its backing array, is what callers
// observe, so growing a segment never has to preserve stale tail data
// the caller was never entitled to see.
type entry struct {
	words []Word
	live  bool
}

// Store is the UM's segmented memory. The zero value is not usable;
// use New. Store is single-owner and is never safe for concurrent
// use: the engine that drives it runs one instruction at a time.
type Store struct {
	entries []entry
	free    []Address // LIFO free list of recyclable addresses.
}

// New creates an empty Store with no segments allocated.
// capacityHint preallocates room for that many segments to avoid
// early reallocation; it has no effect on observable behavior. The
// very first Alloc call on a fresh Store is guaranteed to return
// address 0 — the image loader relies on this to populate segment 0.
func New(capacityHint int) *Store {
	if capacityHint < 1 {
		capacityHint = 1
	}
	return &Store{entries: make([]entry, 0, capacityHint)}
}

// Alloc returns a fresh or recycled address whose segment has exactly
// n zero-initialized words. Recycled addresses are preferred over
// growing the entries table, and are handed back most-recently-freed
// first.
func (s *Store) Alloc(n uint32) Address {
	words := make([]Word, n)
	if len(s.free) > 0 {
		last := len(s.free) - 1
		addr := s.free[last]
		s.free = s.free[:last]
		s.entries[addr] = entry{words: words, live: true}
		return addr
	}
	addr := Address(len(s.entries))
	s.entries = append(s.entries, entry{words: words, live: true})
	return addr
}

// Free marks addr available for a future Alloc. addr must be a
// currently allocated address other than 0.
func (s *Store) Free(addr Address) error {
	if addr == 0 {
		return fmt.Errorf("segment: cannot free address 0")
	}
	e, err := s.live(addr)
	if err != nil {
		return err
	}
	e.words = nil
	e.live = false
	s.entries[addr] = *e
	s.free = append(s.free, addr)
	return nil
}

// Get returns the word at (addr, offset).
func (s *Store) Get(addr Address, offset uint32) (Word, error) {
	e, err := s.live(addr)
	if err != nil {
		return 0, err
	}
	if offset >= uint32(len(e.words)) {
		return 0, fmt.Errorf("segment: offset %d out of range for address %d (length %d)", offset, addr, len(e.words))
	}
	return e.words[offset], nil
}

// Set stores word w at (addr, offset).
func (s *Store) Set(addr Address, offset uint32, w Word) error {
	e, err := s.live(addr)
	if err != nil {
		return err
	}
	if offset >= uint32(len(e.words)) {
		return fmt.Errorf("segment: offset %d out of range for address %d (length %d)", offset, addr, len(e.words))
	}
	e.words[offset] = w
	return nil
}

// Length returns the current word count of the segment at addr.
func (s *Store) Length(addr Address) (uint32, error) {
	e, err := s.live(addr)
	if err != nil {
		return 0, err
	}
	return uint32(len(e.words)), nil
}

// DupIntoZero overwrites segment 0 with an exact copy of the segment
// at src (src may be 0, the identity case) and returns the new
// length of segment 0.
func (s *Store) DupIntoZero(src Address) (uint32, error) {
	e, err := s.live(src)
	if err != nil {
		return 0, err
	}
	if src == 0 {
		return uint32(len(e.words)), nil
	}
	dup := make([]Word, len(e.words))
	copy(dup, e.words)
	s.entries[0] = entry{words: dup, live: true}
	return uint32(len(dup)), nil
}

func (s *Store) live(addr Address) (*entry, error) {
	if int(addr) >= len(s.entries) {
		return nil, fmt.Errorf("segment: address %d never allocated", addr)
	}
	e := &s.entries[addr]
	if !e.live {
		return nil, fmt.Errorf("segment: address %d is not allocated", addr)
	}
	return e, nil
}
