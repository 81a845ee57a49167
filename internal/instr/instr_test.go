package instr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOpcode(t *testing.T) {
	for op := Opcode(0); op <= 15; op++ {
		w := Word(op) << 28
		assert.Equal(t, op, GetOpcode(w))
	}
}

func TestUnpackStandardIgnoresMiddleBits(t *testing.T) {
	// Bits 27..9 must not influence the decoded fields.
	w := Word(OpADD)<<28 | 0x7ffff<<9 | 3<<6 | 5<<3 | 7
	got := UnpackStandard(w)
	assert.Equal(t, Standard{A: 3, B: 5, C: 7}, got)
}

func TestUnpackLoadValue(t *testing.T) {
	w := EncodeLoadValue(4, 0x1abcdef)
	got := UnpackLoadValue(w)
	assert.Equal(t, uint8(4), got.A)
	assert.Equal(t, uint32(0x1abcdef), got.Value)
	assert.Equal(t, OpLV, GetOpcode(w))
}

func TestEncodeDecodeStandardRoundTrip(t *testing.T) {
	for a := uint8(0); a < 8; a++ {
		for b := uint8(0); b < 8; b++ {
			c := uint8(7 - b)
			w := EncodeStandard(OpCMOV, a, b, c)
			assert.Equal(t, OpCMOV, GetOpcode(w))
			assert.Equal(t, Standard{A: a, B: b, C: c}, UnpackStandard(w))
		}
	}
}

func TestEncodeLoadValueTruncatesTo25Bits(t *testing.T) {
	w := EncodeLoadValue(1, 0xffffffff)
	got := UnpackLoadValue(w)
	assert.Equal(t, uint32(0x01ffffff), got.Value)
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "HALT", OpHALT.String())
	assert.Equal(t, "UNK", Opcode(14).String())
	assert.Equal(t, "UNK", Opcode(15).String())
}
