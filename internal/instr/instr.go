/*
 * UM - Instruction codec
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

// Package instr extracts the opcode and register/value fields from a
// UM instruction word. All operations here are total, pure functions
// over a 32-bit word: there is no error condition at the codec level.
package instr

// Word is a single 32-bit instruction.
type Word = uint32

// Opcode identifies one of the 14 defined operations, or one of the
// two undefined codes 14/15.
type Opcode uint8

const (
	OpCMOV Opcode = iota
	OpSLOAD
	OpSSTORE
	OpADD
	OpMUL
	OpDIV
	OpNAND
	OpHALT
	OpACTIVATE
	OpINACTIVATE
	OpOUT
	OpIN
	OpLOADP
	OpLV
)

var names = map[Opcode]string{
	OpCMOV:       "CMOV",
	OpSLOAD:      "SLOAD",
	OpSSTORE:     "SSTORE",
	OpADD:        "ADD",
	OpMUL:        "MUL",
	OpDIV:        "DIV",
	OpNAND:       "NAND",
	OpHALT:       "HALT",
	OpACTIVATE:   "ACTIVATE",
	OpINACTIVATE: "INACTIVATE",
	OpOUT:        "OUT",
	OpIN:         "IN",
	OpLOADP:      "LOADP",
	OpLV:         "LV",
}

// String renders op's mnemonic, or "UNK" for the undefined codes
// 14 and 15.
func (op Opcode) String() string {
	if name, ok := names[op]; ok {
		return name
	}
	return "UNK"
}

const (
	opcodeWidth = 4
	opcodeLSB   = 28

	raWidth = 3
	raLSB   = 6
	rbWidth = 3
	rbLSB   = 3
	rcWidth = 3
	rcLSB   = 0

	ra13Width = 3
	ra13LSB   = 25
	valWidth  = 25
	valLSB    = 0
)

func mask(width uint) Word {
	return (Word(1) << width) - 1
}

func getField(w Word, width, lsb uint) Word {
	return (w >> lsb) & mask(width)
}

// GetOpcode returns the top four bits of w (bits 31..28).
func GetOpcode(w Word) Opcode {
	return Opcode(getField(w, opcodeWidth, opcodeLSB))
}

// Standard is the decoded register-triple format used by opcodes 0..12.
type Standard struct {
	A, B, C uint8
}

// UnpackStandard decodes the rA/rB/rC fields (bits 8..6, 5..3, 2..0).
// Bits 27..9 are ignored.
func UnpackStandard(w Word) Standard {
	return Standard{
		A: uint8(getField(w, raWidth, raLSB)),
		B: uint8(getField(w, rbWidth, rbLSB)),
		C: uint8(getField(w, rcWidth, rcLSB)),
	}
}

// LoadValue is the decoded format used by opcode 13: a destination
// register and a 25-bit unsigned immediate.
type LoadValue struct {
	A     uint8
	Value uint32
}

// UnpackLoadValue decodes the rA (bits 27..25) and 25-bit immediate
// (bits 24..0) fields of a load-value instruction.
func UnpackLoadValue(w Word) LoadValue {
	return LoadValue{
		A:     uint8(getField(w, ra13Width, ra13LSB)),
		Value: getField(w, valWidth, valLSB),
	}
}

// EncodeStandard assembles a standard-format instruction. It is the
// inverse of UnpackStandard and is used by internal/umasm and by
// internal/engine's tests.
func EncodeStandard(op Opcode, a, b, c uint8) Word {
	var w Word
	w |= Word(op) << opcodeLSB
	w |= (Word(a) & mask(raWidth)) << raLSB
	w |= (Word(b) & mask(rbWidth)) << rbLSB
	w |= (Word(c) & mask(rcWidth)) << rcLSB
	return w
}

// EncodeLoadValue assembles a load-value instruction. value is
// truncated to 25 bits, matching the format's capacity.
func EncodeLoadValue(a uint8, value uint32) Word {
	var w Word
	w |= Word(OpLV) << opcodeLSB
	w |= (Word(a) & mask(ra13Width)) << ra13LSB
	w |= (value & mask(valWidth)) << valLSB
	return w
}
