/*
	   Second pass: entry processing and placeholder resolution.

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

// Package pass2 implements the assembler's second pass: it rereads the
// intermediate text to process .entry declarations, then patches every
// placeholder the first pass recorded against the now-complete symbol
// table.
package pass2

import (
	"strings"

	"github.com/rcornwell/casm/internal/codeimage"
	"github.com/rcornwell/casm/internal/diag"
	"github.com/rcornwell/casm/internal/isa"
	"github.com/rcornwell/casm/internal/objfile"
	"github.com/rcornwell/casm/internal/placeholder"
	"github.com/rcornwell/casm/internal/symtab"
	"github.com/rcornwell/casm/internal/word"
)

// Result holds the entry and external reference lists to emit, and any
// diagnostics raised while resolving them.
type Result struct {
	Entries   []objfile.Reference
	Externals []objfile.Reference
	Diags     diag.List
}

// Run processes .entry lines in lines and patches every placeholder
// in-place in code against syms.
func Run(lines []string, file string, syms *symtab.Table, code *codeimage.Image, placeholders []placeholder.Placeholder) Result {
	var res Result

	for i, line := range lines {
		lineNo := i + 1
		_, rest := splitLabel(line)
		fields := strings.SplitN(rest, " ", 2)
		keyword := fields[0]
		if keyword != "entry" && keyword != ".entry" {
			continue
		}
		operand := ""
		if len(fields) == 2 {
			operand = strings.TrimSpace(fields[1])
		}
		if operand == "" || !symtab.ValidName(operand) {
			res.Diags.Add(diag.Second, file, lineNo, "malformed .entry operand %q", operand)
			continue
		}
		if isa.IsReserved(operand) {
			res.Diags.Add(diag.Second, file, lineNo, "entry name %q collides with a reserved name", operand)
			continue
		}
		if err := syms.MarkEntry(operand); err != nil {
			switch err {
			case symtab.ErrEntryUndefined:
				res.Diags.Add(diag.Second, file, lineNo, "undefined entry %q", operand)
			case symtab.ErrEntryExternNotAllowed:
				res.Diags.Add(diag.Second, file, lineNo, "extern %q cannot be declared entry", operand)
			default:
				res.Diags.Add(diag.Second, file, lineNo, "%s", err)
			}
			continue
		}
		sym, _ := syms.Find(operand)
		res.Entries = append(res.Entries, objfile.Reference{Name: sym.Name, Address: sym.Value})
	}

	for _, p := range placeholders {
		sym, found := syms.Find(p.Label)
		if !found {
			res.Diags.Add(diag.Second, file, 0, "undefined symbol %q", p.Label)
			continue
		}

		switch p.Mode {
		case placeholder.Direct:
			if sym.Attr == symtab.External {
				code.Set(p.WordIndex, word.Word(word.AREExternal))
				res.Externals = append(res.Externals, objfile.Reference{
					Name:    p.Label,
					Address: codeimage.BaseAddress + p.WordIndex,
				})
			} else {
				code.Set(p.WordIndex, word.PackSigned(sym.Value, word.AREReloc))
			}
		case placeholder.Relative:
			if sym.Attr == symtab.External {
				res.Diags.Add(diag.Second, file, 0, "extern %q used with '&'", p.Label)
				continue
			}
			offset := sym.Value - p.InstrIC
			code.Set(p.WordIndex, word.PackSigned(offset, word.AREAbsolute))
		}
	}

	return res
}

func splitLabel(norm string) (label, rest string) {
	fields := strings.SplitN(norm, " ", 2)
	first := fields[0]
	if strings.HasSuffix(first, ":") && len(first) > 1 {
		label = strings.TrimSuffix(first, ":")
		if len(fields) == 2 {
			rest = fields[1]
		}
		return label, rest
	}
	return "", norm
}
