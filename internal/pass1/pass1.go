/*
	   First pass: symbol table construction and instruction encoding.

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

// Package pass1 implements the assembler's first pass: it walks the
// normalized intermediate text, builds the symbol table, encodes
// instructions and data into the code and data images, and records
// placeholders for operands that cannot be resolved until the second
// pass.
package pass1

import (
	"strconv"
	"strings"

	"github.com/rcornwell/casm/internal/codeimage"
	"github.com/rcornwell/casm/internal/diag"
	"github.com/rcornwell/casm/internal/isa"
	"github.com/rcornwell/casm/internal/placeholder"
	"github.com/rcornwell/casm/internal/symtab"
	"github.com/rcornwell/casm/internal/word"
)

// Result is the output of Run beyond the mutated tables passed in.
type Result struct {
	Placeholders []placeholder.Placeholder
	Diags        diag.List
	FinalIC      int
}

// Run reads lines (the pre-assembler's normalized intermediate text,
// one statement per entry, no blank lines) and populates syms, code,
// and data in place. It returns the placeholders recorded for the
// second pass and any diagnostics.
func Run(lines []string, file string, syms *symtab.Table, code, data *codeimage.Image) Result {
	var diags diag.List
	var placeholders []placeholder.Placeholder

	ic := codeimage.BaseAddress

	for i, line := range lines {
		lineNo := i + 1
		label, rest := extractLabel(line)
		if label != "" && !symtab.ValidName(label) {
			diags.Add(diag.First, file, lineNo, "label %q is too long or malformed", label)
			continue
		}
		if rest == "" {
			diags.Add(diag.First, file, lineNo, "label with no statement")
			continue
		}

		fields := strings.SplitN(rest, " ", 2)
		keyword := fields[0]
		operandText := ""
		if len(fields) == 2 {
			operandText = strings.TrimSpace(fields[1])
		}

		switch {
		case keyword == "data" || keyword == ".data":
			insertLabel(syms, &diags, file, lineNo, label, symtab.Data, data.Len())
			encodeData(operandText, data, &diags, file, lineNo)

		case keyword == "string" || keyword == ".string":
			insertLabel(syms, &diags, file, lineNo, label, symtab.Data, data.Len())
			encodeString(operandText, data, &diags, file, lineNo)

		case keyword == "extern" || keyword == ".extern":
			encodeExtern(operandText, syms, &diags, file, lineNo)

		case keyword == "entry" || keyword == ".entry":
			// Labels on .entry lines are inserted as code symbols; see
			// Open Question #3. The .entry operand itself is processed
			// in the second pass.
			insertLabel(syms, &diags, file, lineNo, label, symtab.Code, ic)

		default:
			op, isOp := isa.Find(keyword)
			if !isOp {
				diags.Add(diag.First, file, lineNo, "unknown mnemonic %q", keyword)
				continue
			}
			insertLabel(syms, &diags, file, lineNo, label, symtab.Code, ic)
			words, ph := encodeInstruction(op, operandText, ic, &diags, file, lineNo)
			startIdx := code.Len()
			for _, w := range words {
				code.Append(w)
			}
			for relIdx, p := range ph {
				p.WordIndex = startIdx + relIdx
				placeholders = append(placeholders, p)
			}
			ic += len(words)
		}
	}

	if diags.Len() == 0 {
		syms.RelocateData(ic)
	}

	return Result{Placeholders: placeholders, Diags: diags, FinalIC: ic}
}

// extractLabel splits a leading "NAME:" token off line, if present.
func extractLabel(line string) (label, rest string) {
	fields := strings.SplitN(line, " ", 2)
	first := fields[0]
	if strings.HasSuffix(first, ":") && len(first) > 1 {
		label = strings.TrimSuffix(first, ":")
		if len(fields) == 2 {
			rest = fields[1]
		}
		return label, rest
	}
	return "", line
}

func insertLabel(syms *symtab.Table, diags *diag.List, file string, lineNo int, label string, attr symtab.Attr, value int) {
	if label == "" {
		return
	}
	if isa.IsReserved(label) {
		diags.Add(diag.First, file, lineNo, "label %q collides with a reserved name", label)
		return
	}
	if err := syms.Add(label, value, attr); err != nil {
		diags.Add(diag.First, file, lineNo, "%s", err)
	}
}

func encodeExtern(operand string, syms *symtab.Table, diags *diag.List, file string, lineNo int) {
	name := strings.TrimSpace(operand)
	if name == "" || !symtab.ValidName(name) {
		diags.Add(diag.First, file, lineNo, "malformed .extern operand %q", operand)
		return
	}
	if isa.IsReserved(name) {
		diags.Add(diag.First, file, lineNo, "extern name %q collides with a reserved name", name)
		return
	}
	if err := syms.Add(name, 0, symtab.External); err != nil {
		diags.Add(diag.First, file, lineNo, "%s", err)
	}
}

func encodeData(operand string, data *codeimage.Image, diags *diag.List, file string, lineNo int) {
	if operand == "" {
		diags.Add(diag.First, file, lineNo, "missing .data operand")
		return
	}
	parts := strings.Split(operand, ",")
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			diags.Add(diag.First, file, lineNo, "bad numeric literal %q", p)
			continue
		}
		data.Append(word.Word(v) & word.Mask24)
	}
}

func encodeString(operand string, data *codeimage.Image, diags *diag.List, file string, lineNo int) {
	if len(operand) < 2 || operand[0] != '"' || operand[len(operand)-1] != '"' {
		diags.Add(diag.First, file, lineNo, "malformed string literal %q", operand)
		return
	}
	payload := operand[1 : len(operand)-1]
	if len(payload) == 0 {
		diags.Add(diag.First, file, lineNo, "empty string literal")
		return
	}
	for i := 0; i < len(payload); i++ {
		data.Append(word.Word(payload[i]))
	}
	data.Append(word.Word(0))
}

// encodeInstruction builds the header word plus extra words for one
// instruction, and returns any placeholders keyed by the index of the
// extra word within the words slice (relative, patched by the caller to
// an absolute code-image index once appended).
func encodeInstruction(op isa.Op, operandText string, ic int, diags *diag.List, file string, lineNo int) ([]word.Word, map[int]placeholder.Placeholder) {
	var operands []string
	if operandText != "" {
		for _, p := range strings.Split(operandText, ",") {
			operands = append(operands, strings.TrimSpace(p))
		}
	}

	if len(operands) != op.NOperand {
		diags.Add(diag.First, file, lineNo, "wrong operand count for %q: want %d, got %d", operandText, op.NOperand, len(operands))
		return nil, nil
	}

	var srcTok, dstTok string
	switch op.NOperand {
	case 1:
		dstTok = operands[0]
	case 2:
		srcTok, dstTok = operands[0], operands[1]
	}

	srcMode, srcReg, srcVal, srcLabel, srcOK := parseOperand(srcTok)
	dstMode, dstReg, dstVal, dstLabel, dstOK := parseOperand(dstTok)

	if srcTok != "" {
		if !srcOK {
			diags.Add(diag.First, file, lineNo, "malformed source operand %q", srcTok)
			return nil, nil
		}
		if !op.AllowsSrc(srcMode) {
			diags.Add(diag.First, file, lineNo, "illegal source addressing mode for this instruction")
			return nil, nil
		}
	}
	if dstTok != "" {
		if !dstOK {
			diags.Add(diag.First, file, lineNo, "malformed destination operand %q", dstTok)
			return nil, nil
		}
		if !op.AllowsDst(dstMode) {
			diags.Add(diag.First, file, lineNo, "illegal destination addressing mode for this instruction")
			return nil, nil
		}
	}

	header := word.Word(op.Opcode)<<18 |
		modeBits(srcTok, srcMode)<<16 |
		regBits(srcTok, srcMode, srcReg)<<13 |
		modeBits(dstTok, dstMode)<<11 |
		regBits(dstTok, dstMode, dstReg)<<8 |
		word.Word(op.Funct)<<3 |
		word.AREAbsolute

	words := []word.Word{header}
	placeholders := make(map[int]placeholder.Placeholder)

	if srcTok != "" && srcMode != isa.Register {
		w, ph := extraWord(srcMode, srcVal, srcLabel, ic)
		placeholders[len(words)] = ph
		words = append(words, w)
	}
	if dstTok != "" && dstMode != isa.Register {
		w, ph := extraWord(dstMode, dstVal, dstLabel, ic)
		placeholders[len(words)] = ph
		words = append(words, w)
	}

	// Drop placeholder entries for non-symbolic extra words (immediate).
	for idx, ph := range placeholders {
		if ph.Label == "" {
			delete(placeholders, idx)
		}
	}

	return words, placeholders
}

func modeBits(tok string, mode isa.Mode) word.Word {
	if tok == "" {
		return 0
	}
	return word.Word(mode)
}

func regBits(tok string, mode isa.Mode, reg int) word.Word {
	if tok == "" || mode != isa.Register {
		return 0
	}
	return word.Word(reg)
}

func extraWord(mode isa.Mode, value int, label string, ic int) (word.Word, placeholder.Placeholder) {
	switch mode {
	case isa.Immediate:
		return word.PackSigned(value, word.AREAbsolute), placeholder.Placeholder{}
	case isa.Direct:
		return word.Word(0), placeholder.Placeholder{Mode: placeholder.Direct, Label: label, InstrIC: ic}
	case isa.Relative:
		return word.Word(0), placeholder.Placeholder{Mode: placeholder.Relative, Label: label, InstrIC: ic}
	}
	return word.Word(0), placeholder.Placeholder{}
}

// parseOperand classifies a single operand token and extracts its
// payload: the immediate value, the register number, or the referenced
// label (stripped of '&' for relative mode).
func parseOperand(tok string) (mode isa.Mode, reg int, value int, label string, ok bool) {
	if tok == "" {
		return 0, 0, 0, "", true
	}
	switch {
	case strings.HasPrefix(tok, "#"):
		v, err := strconv.ParseInt(tok[1:], 10, 64)
		if err != nil {
			return 0, 0, 0, "", false
		}
		return isa.Immediate, 0, int(v), "", true
	case strings.HasPrefix(tok, "&"):
		name := tok[1:]
		if !symtab.ValidName(name) {
			return 0, 0, 0, "", false
		}
		return isa.Relative, 0, 0, name, true
	case isa.IsRegister(tok):
		return isa.Register, isa.RegisterNumber(tok), 0, "", true
	case symtab.ValidName(tok):
		return isa.Direct, 0, 0, tok, true
	default:
		return 0, 0, 0, "", false
	}
}
