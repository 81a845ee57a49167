/*
 * UM - Instruction disassembler
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

// Package disasm renders a single UM instruction word as one line of
// assembler-style text, the way internal/umasm's Builder would have
// written it.
package disasm

import (
	"fmt"

	"github.com/rcornwell/universal-machine/internal/instr"
)

// kind says which operand layout a mnemonic takes, mirroring the
// three-register and load-value encodings in internal/instr.
type kind int

const (
	kindABC  kind = iota // rA, rB, rC all significant
	kindBC               // rA unused (ACTIVATE, LOADP)
	kindC                // only rC significant (INACTIVATE, OUT, IN)
	kindNone             // no operands (HALT)
	kindLoad             // load-value format
)

type opInfo struct {
	name string
	kind kind
}

var opTable = map[instr.Opcode]opInfo{
	instr.OpCMOV:       {"CMOV", kindABC},
	instr.OpSLOAD:      {"SLOAD", kindABC},
	instr.OpSSTORE:     {"SSTORE", kindABC},
	instr.OpADD:        {"ADD", kindABC},
	instr.OpMUL:        {"MUL", kindABC},
	instr.OpDIV:        {"DIV", kindABC},
	instr.OpNAND:       {"NAND", kindABC},
	instr.OpHALT:       {"HALT", kindNone},
	instr.OpACTIVATE:   {"ACTIVATE", kindBC},
	instr.OpINACTIVATE: {"INACTIVATE", kindC},
	instr.OpOUT:        {"OUT", kindC},
	instr.OpIN:         {"IN", kindC},
	instr.OpLOADP:      {"LOADP", kindBC},
	instr.OpLV:         {"LV", kindLoad},
}

// Disassemble decodes one instruction word and formats it as a
// single line: mnemonic followed by the registers or immediate it
// reads, in the order the engine consumes them.
func Disassemble(w instr.Word) string {
	op := instr.GetOpcode(w)
	info, ok := opTable[op]
	if !ok {
		return fmt.Sprintf("DW       0x%08x  ; undefined opcode %d", w, op)
	}

	if info.kind == kindLoad {
		lv := instr.UnpackLoadValue(w)
		return fmt.Sprintf("%-8s r%d, %d", info.name, lv.A, lv.Value)
	}

	f := instr.UnpackStandard(w)
	switch info.kind {
	case kindNone:
		return info.name
	case kindC:
		return fmt.Sprintf("%-8s r%d", info.name, f.C)
	case kindBC:
		return fmt.Sprintf("%-8s r%d, r%d", info.name, f.B, f.C)
	default: // kindABC
		return fmt.Sprintf("%-8s r%d, r%d, r%d", info.name, f.A, f.B, f.C)
	}
}

// DisassembleAll renders every word in words as one line each,
// prefixed with its offset into the segment.
func DisassembleAll(words []instr.Word) []string {
	lines := make([]string, len(words))
	for i, w := range words {
		lines[i] = fmt.Sprintf("%6d: %s", i, Disassemble(w))
	}
	return lines
}
