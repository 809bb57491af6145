/*
	   24-bit machine word.

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

// Package word defines the 24-bit machine word used by the assembler's
// code and data images, and the ARE (Absolute/Relocatable/External) bits
// that occupy the low three bits of every encoded word.
package word

// Word holds a 24-bit unsigned quantity. Values are masked to 24 bits
// whenever they are stored into a code or data image.
type Word uint32

// Mask24 keeps only the low 24 bits of v.
const Mask24 Word = 0xFFFFFF

// ARE bit patterns, occupying bits 2..0 of every machine word.
const (
	AREAbsolute Word = 4 // 100 - resolved at assembly time
	AREReloc    Word = 2 // 010 - relocatable, resolved against a symbol
	AREExternal Word = 1 // 001 - resolved by the linker against an extern
)

// Mask returns w truncated to 24 significant bits.
func (w Word) Mask() Word {
	return w & Mask24
}

// PackSigned packs a signed value into the upper 21 bits of a word
// (bits 23..3), two's-complement, with the given ARE bits in 2..0.
func PackSigned(value int, are Word) Word {
	return (Word(value&0x1FFFFF) << 3) | (are & 0x7)
}
