/*
	   Opcode catalog for the 24-bit instruction set.

		Copyright (c) 2024, Richard Cornwell

		Permission is hereby granted, free of charge, to any person obtaining a
		copy of this software and associated documentation files (the "Software"),
		to deal in the Software without restriction, including without limitation
		the rights to use, copy, modify, merge, publish, distribute, sublicense,
		and/or sell copies of the Software, and to permit persons to whom the
		Software is furnished to do so, subject to the following conditions:

		The above copyright notice and this permission notice shall be included in
		all copies or substantial portions of the Software.

		THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
		IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
		FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
		RICHARD CORNWELL BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
		IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
		CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/

// Package isa holds the static mnemonic table for the target instruction
// set: opcode, function code, operand count, and the addressing modes
// each operand position accepts.
package isa

// Mode is one of the four addressing modes an operand may use.
type Mode int

const (
	Immediate Mode = iota // #N
	Direct                // label
	Relative              // &label
	Register              // r0..r7
)

// modeMask builds a bitmask over the four Mode values, one bit per mode,
// matching the source's MAKE_ADDR_MASK(imm, dir, rel, reg) convention.
type modeMask uint8

func mask(modes ...Mode) modeMask {
	var m modeMask
	for _, mo := range modes {
		m |= 1 << uint(mo)
	}
	return m
}

func (m modeMask) allows(mo Mode) bool {
	return m&(1<<uint(mo)) != 0
}

// Op describes one mnemonic's encoding.
type Op struct {
	Opcode   int
	Funct    int
	SrcModes modeMask
	DstModes modeMask
	NOperand int
}

// AllowsSrc reports whether mo is a legal source addressing mode for op.
func (op Op) AllowsSrc(mo Mode) bool { return op.SrcModes.allows(mo) }

// AllowsDst reports whether mo is a legal destination addressing mode for op.
func (op Op) AllowsDst(mo Mode) bool { return op.DstModes.allows(mo) }

// table is the static mnemonic catalog from the instruction set
// definition: opcode, function code, source/destination mode masks, and
// operand count.
var table = map[string]Op{
	"mov":  {0, 0, mask(Immediate, Direct, Register), mask(Direct, Register), 2},
	"cmp":  {1, 0, mask(Immediate, Direct, Register), mask(Immediate, Direct, Register), 2},
	"add":  {2, 1, mask(Immediate, Direct, Register), mask(Direct, Register), 2},
	"sub":  {2, 2, mask(Immediate, Direct, Register), mask(Direct, Register), 2},
	"lea":  {4, 0, mask(Direct), mask(Direct, Register), 2},
	"clr":  {5, 1, 0, mask(Direct, Register), 1},
	"not":  {5, 2, 0, mask(Direct, Register), 1},
	"inc":  {5, 3, 0, mask(Direct, Register), 1},
	"dec":  {5, 4, 0, mask(Direct, Register), 1},
	"jmp":  {9, 1, 0, mask(Direct, Relative), 1},
	"bne":  {9, 2, 0, mask(Direct, Relative), 1},
	"jsr":  {9, 3, 0, mask(Direct, Relative), 1},
	"red":  {12, 0, 0, mask(Direct, Register), 1},
	"prn":  {13, 0, 0, mask(Immediate, Direct, Register), 1},
	"rts":  {14, 0, 0, 0, 0},
	"stop": {15, 0, 0, 0, 0},
}

// Find looks up a mnemonic (case-sensitive, as the language has no
// case-folding rule for mnemonics) and reports whether it exists.
func Find(mnemonic string) (Op, bool) {
	op, ok := table[mnemonic]
	return op, ok
}

// IsMnemonic reports whether name names a known instruction.
func IsMnemonic(name string) bool {
	_, ok := table[name]
	return ok
}

// IsRegister reports whether name is one of r0..r7.
func IsRegister(name string) bool {
	return len(name) == 2 && name[0] == 'r' && name[1] >= '0' && name[1] <= '7'
}

// RegisterNumber returns the register number encoded by name, or -1 if
// name is not a register operand.
func RegisterNumber(name string) int {
	if !IsRegister(name) {
		return -1
	}
	return int(name[1] - '0')
}

// IsReserved reports whether name collides with a mnemonic or a register,
// the rule used to reject labels and extern/entry names that shadow them.
func IsReserved(name string) bool {
	return IsMnemonic(name) || IsRegister(name)
}

// directiveKeywords are the non-instruction statement keywords that a
// macro name must not collide with.
var directiveKeywords = map[string]bool{
	"data":    true,
	"string":  true,
	"entry":   true,
	"extern":  true,
	"mcro":    true,
	"mcroend": true,
}

// IsDirectiveKeyword reports whether name is one of the directive or
// macro-block keywords reserved for macro names.
func IsDirectiveKeyword(name string) bool {
	return directiveKeywords[name]
}
