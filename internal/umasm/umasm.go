/*
 * UM - Instruction stream builder
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

// Package umasm assembles UM instruction streams by hand, the way the
// catalogue of named micro-programs in Catalogue is built: one
// wrapper function per opcode, appended in order to a Builder, then
// serialized to a big-endian image.
package umasm

import (
	"bytes"
	"encoding/binary"

	"github.com/rcornwell/universal-machine/internal/instr"
)

// Register names the eight general-purpose registers for readability
// at call sites.
type Register = uint8

const (
	R0 Register = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
)

// Builder accumulates a sequence of instruction words in program
// order. The zero value is ready to use.
type Builder struct {
	words []instr.Word
}

// Emit appends a raw instruction word; every per-opcode wrapper below
// is built on it.
func (b *Builder) Emit(w instr.Word) {
	b.words = append(b.words, w)
}

// Len returns the number of words emitted so far.
func (b *Builder) Len() int {
	return len(b.words)
}

// Bytes renders the stream as a big-endian byte image, suitable for
// internal/loader or for writing to a ".um" file.
func (b *Builder) Bytes() []byte {
	buf := make([]byte, 4*len(b.words))
	for i, w := range b.words {
		binary.BigEndian.PutUint32(buf[i*4:i*4+4], w)
	}
	return buf
}

// Reader returns an io.Reader over Bytes, for direct use with
// internal/loader.Load.
func (b *Builder) Reader() *bytes.Reader {
	return bytes.NewReader(b.Bytes())
}

func (b *Builder) Halt() {
	b.Emit(instr.EncodeStandard(instr.OpHALT, 0, 0, 0))
}

func (b *Builder) Output(c Register) {
	b.Emit(instr.EncodeStandard(instr.OpOUT, 0, 0, c))
}

func (b *Builder) LoadValue(a Register, value uint32) {
	b.Emit(instr.EncodeLoadValue(a, value))
}

// Add sets dst = x + y.
func (b *Builder) Add(dst, x, y Register) {
	b.Emit(instr.EncodeStandard(instr.OpADD, dst, x, y))
}

// Mul sets dst = x * y.
func (b *Builder) Mul(dst, x, y Register) {
	b.Emit(instr.EncodeStandard(instr.OpMUL, dst, x, y))
}

// Div sets dst = numerator / denominator.
func (b *Builder) Div(dst, numerator, denominator Register) {
	b.Emit(instr.EncodeStandard(instr.OpDIV, dst, numerator, denominator))
}

// Nand sets dst = ^(x & y).
func (b *Builder) Nand(dst, x, y Register) {
	b.Emit(instr.EncodeStandard(instr.OpNAND, dst, x, y))
}

// ConditionalMove sets dst = src if cond != 0.
func (b *Builder) ConditionalMove(dst, src, cond Register) {
	b.Emit(instr.EncodeStandard(instr.OpCMOV, dst, src, cond))
}

// SegmentedLoad sets dst = segment[seg][offset].
func (b *Builder) SegmentedLoad(dst, seg, offset Register) {
	b.Emit(instr.EncodeStandard(instr.OpSLOAD, dst, seg, offset))
}

// SegmentedStore sets segment[seg][offset] = value.
func (b *Builder) SegmentedStore(seg, offset, value Register) {
	b.Emit(instr.EncodeStandard(instr.OpSSTORE, seg, offset, value))
}

// MapSegment allocates a segment of size words and leaves its address
// in dst.
func (b *Builder) MapSegment(dst, size Register) {
	b.Emit(instr.EncodeStandard(instr.OpACTIVATE, 0, dst, size))
}

// UnmapSegment frees the segment whose address is in seg.
func (b *Builder) UnmapSegment(seg Register) {
	b.Emit(instr.EncodeStandard(instr.OpINACTIVATE, 0, 0, seg))
}

func (b *Builder) Input(c Register) {
	b.Emit(instr.EncodeStandard(instr.OpIN, 0, 0, c))
}

// LoadProgram replaces segment 0 with a copy of the segment at src
// (unless src is 0) and sets the program counter to pc.
func (b *Builder) LoadProgram(src, pc Register) {
	b.Emit(instr.EncodeStandard(instr.OpLOADP, 0, src, pc))
}

// OutputDigit adds the ASCII digit offset (48, '0') to the value in
// rA, leaving the result in rB, and writes it. It does not modify rA.
func (b *Builder) OutputDigit(rA, rB Register) {
	b.LoadValue(rB, 48)
	b.Add(rB, rA, rB)
	b.Output(rB)
}

// LoadMaxVal stores 0xffffffff-offset in rB, using rA as scratch.
func (b *Builder) LoadMaxVal(rA, rB Register, offset uint32) {
	b.LoadValue(rA, 65535)
	b.LoadValue(rB, 65536)
	b.Mul(rB, rA, rB)
	b.LoadValue(rA, 65535-offset)
	b.Add(rB, rA, rB)
}
