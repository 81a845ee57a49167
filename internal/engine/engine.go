/*
 * UM - main instruction fetch and execute.
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

// Package engine holds the eight UM registers and the program
// counter, and runs the fetch-decode-execute loop against a
// segment.Store. It is the only package in the core that performs
// I/O (OUT/IN), and the only one that knows about the LOADP
// program-replacement semantics.
package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/rcornwell/universal-machine/internal/instr"
	"github.com/rcornwell/universal-machine/internal/segment"
)

// ErrFellOffProgram is returned by Run when the program counter
// reaches the end of segment 0 without executing HALT.
var ErrFellOffProgram = errors.New("um: terminated without halt")

// State is the engine's run state: Running or Stopped, reached only
// through HALT, a fetch overrun, or a fatal store/I/O error.
type State int

const (
	Running State = iota
	Stopped
)

// Machine is the UM execution engine. The zero value is not usable;
// use New.
type Machine struct {
	regs  [8]instr.Word
	pc    uint32
	store *segment.Store

	// segLen caches segment 0's length so the hot fetch path never
	// has to ask the store for it; LOADP invalidates the cache.
	segLen uint32

	in  *bufio.Reader
	out io.Writer

	table [16]func(*Machine, instr.Standard) error

	state State
}

// New creates a Machine bound to store, reading IN bytes from in and
// writing OUT bytes to out. store must already have segment 0
// populated (see internal/loader).
func New(store *segment.Store, in io.Reader, out io.Writer) (*Machine, error) {
	n, err := store.Length(0)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	m := &Machine{
		store:  store,
		segLen: n,
		in:     bufio.NewReader(in),
		out:    out,
	}
	m.buildTable()
	return m, nil
}

// Registers returns a copy of the eight general-purpose registers,
// for inspection by tests and tooling.
func (m *Machine) Registers() [8]instr.Word {
	return m.regs
}

// PC returns the current program counter.
func (m *Machine) PC() uint32 {
	return m.pc
}

// State returns the machine's current Running/Stopped state.
func (m *Machine) State() State {
	return m.state
}

// buildTable wires up the dispatch table indexed by opcode. Entries
// 14 and 15 are left nil: undefined opcodes are silently ignored.
func (m *Machine) buildTable() {
	m.table = [16]func(*Machine, instr.Standard) error{
		instr.OpCMOV:       (*Machine).opCMOV,
		instr.OpSLOAD:      (*Machine).opSLOAD,
		instr.OpSSTORE:     (*Machine).opSSTORE,
		instr.OpADD:        (*Machine).opADD,
		instr.OpMUL:        (*Machine).opMUL,
		instr.OpDIV:        (*Machine).opDIV,
		instr.OpNAND:       (*Machine).opNAND,
		instr.OpHALT:       (*Machine).opHALT,
		instr.OpACTIVATE:   (*Machine).opACTIVATE,
		instr.OpINACTIVATE: (*Machine).opINACTIVATE,
		instr.OpOUT:        (*Machine).opOUT,
		instr.OpIN:         (*Machine).opIN,
		instr.OpLOADP:      (*Machine).opLOADP,
	}
}

// Run executes instructions until HALT, a fetch overrun, or a fatal
// error. It returns nil on HALT, ErrFellOffProgram on overrun, or the
// first fatal store/I/O error encountered.
func (m *Machine) Run() error {
	m.state = Running
	for m.state == Running {
		if err := m.Step(); err != nil {
			m.state = Stopped
			return err
		}
	}
	return nil
}

// Step executes exactly one instruction: fetch, advance PC, decode,
// dispatch. It returns ErrFellOffProgram if PC has run off the end of
// segment 0, nil after HALT (with m.state set to Stopped), and any
// store/I/O error the executed opcode produced.
func (m *Machine) Step() error {
	if m.pc >= m.segLen {
		return ErrFellOffProgram
	}

	w, err := m.store.Get(0, m.pc)
	if err != nil {
		return fmt.Errorf("engine: fetch at pc=%d: %w", m.pc, err)
	}
	m.pc++

	op := instr.GetOpcode(w)
	if op == instr.OpLV {
		lv := instr.UnpackLoadValue(w)
		m.regs[lv.A] = lv.Value
		return nil
	}

	fn := m.table[op]
	if fn == nil {
		// Opcodes 14 and 15: undefined, silently ignored.
		return nil
	}
	return fn(m, instr.UnpackStandard(w))
}

func (m *Machine) opCMOV(f instr.Standard) error {
	if m.regs[f.C] != 0 {
		m.regs[f.A] = m.regs[f.B]
	}
	return nil
}

func (m *Machine) opSLOAD(f instr.Standard) error {
	w, err := m.store.Get(segment.Address(m.regs[f.B]), m.regs[f.C])
	if err != nil {
		return fmt.Errorf("engine: SLOAD: %w", err)
	}
	m.regs[f.A] = w
	return nil
}

func (m *Machine) opSSTORE(f instr.Standard) error {
	if err := m.store.Set(segment.Address(m.regs[f.A]), m.regs[f.B], m.regs[f.C]); err != nil {
		return fmt.Errorf("engine: SSTORE: %w", err)
	}
	return nil
}

func (m *Machine) opADD(f instr.Standard) error {
	m.regs[f.A] = m.regs[f.B] + m.regs[f.C]
	return nil
}

func (m *Machine) opMUL(f instr.Standard) error {
	m.regs[f.A] = m.regs[f.B] * m.regs[f.C]
	return nil
}

func (m *Machine) opDIV(f instr.Standard) error {
	if m.regs[f.C] == 0 {
		return fmt.Errorf("engine: DIV by zero at pc=%d", m.pc-1)
	}
	m.regs[f.A] = m.regs[f.B] / m.regs[f.C]
	return nil
}

func (m *Machine) opNAND(f instr.Standard) error {
	m.regs[f.A] = ^(m.regs[f.B] & m.regs[f.C])
	return nil
}

func (m *Machine) opHALT(instr.Standard) error {
	m.state = Stopped
	return nil
}

func (m *Machine) opACTIVATE(f instr.Standard) error {
	m.regs[f.B] = instr.Word(m.store.Alloc(m.regs[f.C]))
	return nil
}

func (m *Machine) opINACTIVATE(f instr.Standard) error {
	if err := m.store.Free(segment.Address(m.regs[f.C])); err != nil {
		return fmt.Errorf("engine: INACTIVATE: %w", err)
	}
	return nil
}

func (m *Machine) opOUT(f instr.Standard) error {
	_, err := m.out.Write([]byte{byte(m.regs[f.C] & 0xff)})
	if err != nil {
		return fmt.Errorf("engine: OUT: %w", err)
	}
	return nil
}

func (m *Machine) opIN(f instr.Standard) error {
	b, err := m.in.ReadByte()
	if err != nil {
		if err == io.EOF {
			m.regs[f.C] = 0xffffffff
			return nil
		}
		return fmt.Errorf("engine: IN: %w", err)
	}
	m.regs[f.C] = instr.Word(b)
	return nil
}

func (m *Machine) opLOADP(f instr.Standard) error {
	if m.regs[f.B] != 0 {
		n, err := m.store.DupIntoZero(segment.Address(m.regs[f.B]))
		if err != nil {
			return fmt.Errorf("engine: LOADP: %w", err)
		}
		m.segLen = n
	}
	m.pc = m.regs[f.C]
	return nil
}
