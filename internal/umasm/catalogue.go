/*
 * UM - Named test program catalogue
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

package umasm

// Program is one named entry in Catalogue: a builder function plus
// the stdin it expects (empty if none) and the stdout a correct
// implementation produces. An empty Expected means the program's
// output isn't meant to be checked byte-for-byte (e.g. it only
// exercises a code path with no deterministic text result).
type Program struct {
	Name     string
	Input    string
	Expected string
	Build    func(b *Builder)
}

// Catalogue lists every named test program, in the order they were
// first written against this instruction set.
var Catalogue = []Program{
	{"halt", "", "", buildHalt},
	{"output", "", "", buildOutput},
	{"load-value", "", "abcdefg", buildLoadValue},
	{"halt-verbose", "", "", buildHaltVerbose},
	{"add", "", "5", buildAdd},
	{"add-mod", "", "0", buildAddMod},
	{"mul", "", "6", buildMul},
	{"mul-mod", "", "0", buildMulMod},
	{"div", "", "011", buildDiv},
	{"nand", "", "03", buildNand},
	{"print-six", "", "6", buildPrintSix},
	{"cmov", "", "abbb", buildCmov},
	{"sload", "", "ST", buildSload},
	{"sstore", "", "S", buildSstore},
	{"map-segment", "", "100002", buildMapSegment},
	{"unmap-segment", "", "", buildUnmapSegment},
	{"input", "abcde\nabc", "abcde\nabc", buildInput},
	{"input-eof", "", "0", buildInputEOF},
	{"load-program", "", "b", buildLoadProgram},
	{"map-and-store", "", "S", buildMapAndStore},
	{"load-seg-0", "", "ab", buildLoadSeg0},
	{"map-empty-seg", "", "", buildMapEmptySeg},
	{"performance", "", "", buildPerformance},
}

// Find returns the named program, or ok=false if no such program
// exists.
func Find(name string) (Program, bool) {
	for _, p := range Catalogue {
		if p.Name == name {
			return p, true
		}
	}
	return Program{}, false
}

func buildHalt(b *Builder) {
	b.Halt()
}

func buildOutput(b *Builder) {
	b.Output(R1)
	b.Output(R1)
	b.Output(R2)
	b.Output(R3)
	b.Output(R4)
	b.Output(R5)
	b.Output(R6)
	b.Output(R7)
	b.Halt()
}

func buildLoadValue(b *Builder) {
	for i, r := range []Register{R1, R2, R3, R4, R5, R6, R7} {
		b.LoadValue(r, uint32('a'+i))
		b.Output(r)
	}
	b.Halt()
}

func buildHaltVerbose(b *Builder) {
	b.Halt()
	for _, c := range []uint32{'B', 'a', 'd', '!', '\n'} {
		b.LoadValue(R1, c)
		b.Output(R1)
	}
}

func buildAdd(b *Builder) {
	b.LoadValue(R1, 1)
	b.LoadValue(R2, 2)
	b.LoadValue(R3, 3)
	b.Add(R1, R2, R3)
	b.OutputDigit(R1, R4)
	b.Halt()
}

func buildPrintSix(b *Builder) {
	b.LoadValue(R1, 48)
	b.LoadValue(R2, 6)
	b.Add(R3, R1, R2)
	b.Output(R3)
	b.Halt()
}

func buildAddMod(b *Builder) {
	b.LoadValue(R1, 0)
	b.LoadValue(R2, 65536)
	for i := 0; i < 65536; i++ {
		b.Add(R1, R1, R2)
	}
	b.OutputDigit(R1, R4)
	b.Halt()
}

func buildMul(b *Builder) {
	b.LoadValue(R1, 1)
	b.LoadValue(R2, 2)
	b.LoadValue(R3, 3)
	b.Mul(R1, R2, R3)
	b.OutputDigit(R1, R4)
	b.Halt()
}

func buildMulMod(b *Builder) {
	b.LoadValue(R1, 65536)
	b.Mul(R1, R1, R1)
	b.OutputDigit(R1, R2)
	b.Halt()
}

func buildDiv(b *Builder) {
	b.LoadValue(R1, 1)
	b.LoadValue(R2, 2)
	b.LoadValue(R3, 3)
	b.Div(R1, R2, R3)
	b.OutputDigit(R1, R4)
	b.Div(R1, R3, R2)
	b.OutputDigit(R1, R4)

	b.LoadValue(R4, 16777216)
	b.LoadValue(R5, 2)
	for i := 0; i < 24; i++ {
		b.Div(R4, R4, R5)
	}
	b.OutputDigit(R4, R6)
	b.Halt()
}

func buildNand(b *Builder) {
	b.LoadMaxVal(R7, R1, 0)
	b.LoadMaxVal(R7, R2, 0)
	b.Nand(R3, R2, R1)
	b.OutputDigit(R3, R4)

	b.LoadMaxVal(R7, R1, 1)
	b.LoadMaxVal(R7, R2, 2)
	b.Nand(R3, R2, R1)
	b.OutputDigit(R3, R4)
	b.Halt()
}

func buildCmov(b *Builder) {
	b.LoadValue(R1, 'a')
	b.LoadValue(R2, 'b')
	b.LoadValue(R3, 0)
	b.ConditionalMove(R1, R2, R3)
	b.Output(R1)
	b.Output(R2)
	b.LoadValue(R3, 10)
	b.ConditionalMove(R1, R2, R3)
	b.Output(R1)
	b.Output(R2)
	b.Halt()
}

func buildSload(b *Builder) {
	b.ConditionalMove(R1, R2, R3) // word value equals 'S'
	b.ConditionalMove(R1, R2, R4) // word value equals 'T'
	b.LoadValue(R1, 0)
	b.LoadValue(R2, 0)
	b.LoadValue(R3, 0)
	b.SegmentedLoad(R1, R2, R3)
	b.Output(R1)
	b.LoadValue(R1, 0)
	b.LoadValue(R2, 0)
	b.LoadValue(R3, 1)
	b.SegmentedLoad(R1, R2, R3)
	b.Output(R1)
	b.Halt()
}

func buildSstore(b *Builder) {
	b.ConditionalMove(R1, R2, R3) // word value equals 'S'
	b.ConditionalMove(R1, R2, R4) // word value equals 'T'
	b.LoadValue(R1, 0)
	b.LoadValue(R2, 0)
	b.LoadValue(R3, 0)

	b.SegmentedLoad(R3, R1, R2)

	b.LoadValue(R2, 1)
	b.SegmentedStore(R1, R2, R3)

	b.SegmentedLoad(R4, R1, R2)
	b.Output(R4)
	b.Halt()
}

func buildMapSegment(b *Builder) {
	b.LoadValue(R1, 4)
	b.MapSegment(R2, R1)
	b.OutputDigit(R2, R7)
	for i := uint32(0); i < 4; i++ {
		b.LoadValue(R3, i)
		b.SegmentedLoad(R4, R2, R3)
		b.OutputDigit(R4, R7)
	}
	b.LoadValue(R1, 0)
	b.MapSegment(R5, R1)
	b.OutputDigit(R5, R7)
	b.Halt()
}

func buildMapAndStore(b *Builder) {
	b.LoadValue(R1, 3)
	b.MapSegment(R2, R1)
	b.LoadValue(R3, 83)
	b.LoadValue(R4, 0)
	b.SegmentedStore(R2, R4, R3)
	b.SegmentedLoad(R6, R2, R4)
	b.Output(R6)
	b.Halt()
}

func buildUnmapSegment(b *Builder) {
	b.LoadValue(R1, 4)
	b.MapSegment(R2, R1)
	b.UnmapSegment(R2)
	b.MapSegment(R2, R1)
	b.UnmapSegment(R2)
	b.Halt()
}

func buildMapEmptySeg(b *Builder) {
	b.LoadValue(R1, 0)
	b.MapSegment(R2, R1)
	b.UnmapSegment(R2)
	b.Halt()
}

func buildInput(b *Builder) {
	for i := 0; i < 9; i++ {
		b.Input(R1)
		b.Output(R1)
	}
	b.Halt()
}

func buildInputEOF(b *Builder) {
	b.Input(R1)
	b.LoadValue(R2, 1)
	b.Add(R1, R1, R2)
	b.OutputDigit(R1, R7)
	b.Halt()
}

func buildLoadSeg0(b *Builder) {
	b.LoadValue(R1, 0)
	b.LoadValue(R2, 4)
	b.LoadProgram(R1, R2)
	b.Halt()
	b.LoadValue(R1, 'a')
	b.LoadValue(R2, 'b')
	b.Output(R1)
	b.Output(R2)
	b.Halt()
}

func buildLoadProgram(b *Builder) {
	b.LoadValue(R1, 4)
	b.MapSegment(R2, R1)
	b.LoadValue(R3, 83)
	b.LoadValue(R4, 0)
	b.SegmentedStore(R2, R4, R3)
	b.LoadValue(R3, 84)
	b.LoadValue(R4, 1)
	b.SegmentedStore(R2, R4, R3)

	// Assembles an OUT instruction word (output r1) by arithmetic
	// instead of spelling it out directly.
	b.LoadValue(R5, 6637)
	b.LoadValue(R6, 3041)
	b.LoadValue(R7, 133)
	b.Mul(R5, R5, R6)
	b.Mul(R5, R5, R7)
	b.LoadValue(R4, 2)
	b.SegmentedStore(R2, R4, R5)

	// Assembles a HALT instruction word the same way.
	b.LoadValue(R5, 16384)
	b.LoadValue(R6, 7)
	b.Mul(R5, R5, R5)
	b.Mul(R5, R5, R6)
	b.LoadValue(R4, 3)
	b.SegmentedStore(R2, R4, R5)

	b.LoadValue(R1, 'a')
	b.ConditionalMove(R6, R2, R1)
	b.LoadValue(R2, 'b')
	b.LoadValue(R3, 1)
	b.LoadValue(R4, 1)

	b.LoadValue(R5, 0)
	b.LoadProgram(R6, R5) // replaces segment 0; should output 'b'

	b.Halt()
}

func buildPerformance(b *Builder) {
	for i := uint32(1); i < 50000; i++ {
		b.LoadValue(R1, i)
		b.LoadValue(R3, i-1)
		b.LoadValue(R6, 25000)
		b.Div(R5, R1, R6)
		b.ConditionalMove(R4, R3, R5)
		b.Nand(R1, R1, R5)
		b.Add(R7, R1, R6)
		b.Mul(R5, R0, R2)
		b.Add(R7, R1, R6)
		b.Mul(R5, R0, R2)
	}
	b.Halt()
}
