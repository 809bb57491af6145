/*
	   Pre-assembler: macro expansion.

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

// Package preassembler reads a raw source file and produces the
// normalized, macro-expanded intermediate text consumed by the first
// pass.
package preassembler

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rcornwell/casm/internal/diag"
	"github.com/rcornwell/casm/internal/isa"
	"github.com/rcornwell/casm/internal/macro"
)

// MaxLineLength is the default 80-column limit on an input line
// (excluding the terminator). internal/config can override it.
const MaxLineLength = 80

// Result is the outcome of a Run.
type Result struct {
	Lines []string // normalized intermediate lines, without provenance markers
	Diags diag.List
}

// Run reads src line by line, expands macros, and returns the
// normalized intermediate text. file is used only to label diagnostics.
// maxLineLength is MaxLineLength unless overridden by configuration.
func Run(src io.Reader, file string, maxLineLength int) Result {
	if maxLineLength <= 0 {
		maxLineLength = MaxLineLength
	}

	rawLines, diags := readAll(src, file, maxLineLength)
	if diags.Len() > 0 {
		return Result{Diags: diags}
	}

	labels := scanLabels(rawLines)

	var table macro.Table
	var out []string
	var openName string
	var openBody []string
	inDef := false

	for i, raw := range rawLines {
		lineNo := i + 1
		norm := normalize(raw)
		if norm == "" {
			continue
		}

		fields := splitFirst(norm)
		first := fields.head

		switch {
		case first == "mcro":
			if inDef {
				diags.Add(diag.Pre, file, lineNo, "mcro inside another macro definition")
				continue
			}
			name, extra := fields.rest, ""
			if sp := strings.IndexByte(name, ' '); sp >= 0 {
				extra = strings.TrimSpace(name[sp+1:])
				name = name[:sp]
			}
			if name == "" {
				diags.Add(diag.Pre, file, lineNo, "missing macro name")
				continue
			}
			if extra != "" {
				diags.Add(diag.Pre, file, lineNo, "extra tokens after mcro name")
				continue
			}
			if !macro.ValidName(name) {
				diags.Add(diag.Pre, file, lineNo, "illegal macro name %q", name)
				continue
			}
			if isa.IsReserved(name) || isa.IsDirectiveKeyword(name) {
				diags.Add(diag.Pre, file, lineNo, "macro name %q collides with a reserved word", name)
				continue
			}
			if labels[name] {
				diags.Add(diag.Pre, file, lineNo, "macro name %q collides with a label in the source", name)
				continue
			}
			if err := table.Define(name); err != nil {
				diags.Add(diag.Pre, file, lineNo, "%s", err)
				continue
			}
			inDef = true
			openName = name
			openBody = nil

		case first == "mcroend":
			if fields.rest != "" {
				diags.Add(diag.Pre, file, lineNo, "extra tokens after mcroend")
			}
			// Orphan mcroend (no open mcro) is silently tolerated: see
			// Open Question #2, preserved from the original behavior.
			if inDef {
				table.Complete(openName, openBody)
				inDef = false
				openName = ""
				openBody = nil
			}

		case inDef:
			openBody = append(openBody, norm)

		default:
			label, body := splitLabel(norm)
			lookup := body
			if lookup == "" {
				lookup = label
				label = ""
			}
			name := splitFirst(lookup).head
			if m, ok := table.Find(name); ok {
				switch {
				case label == "":
					out = append(out, m.Body...)
				case len(m.Body) == 0:
					out = append(out, label+":")
				default:
					out = append(out, label+": "+m.Body[0])
					out = append(out, m.Body[1:]...)
				}
			} else {
				out = append(out, norm)
			}
		}
	}
	// EOF while a macro definition is still open: the unterminated
	// macro's body is discarded, matching the original leniency.

	if diags.Len() > 0 {
		return Result{Diags: diags}
	}
	return Result{Lines: out}
}

// WriteIntermediate writes lines to w with "; SRCLINE n" provenance
// markers preceding each emitted line, numbered from 1.
func WriteIntermediate(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for i, line := range lines {
		if _, err := fmt.Fprintf(bw, "; SRCLINE %d\n%s\n", i+1, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func readAll(src io.Reader, file string, maxLineLength int) ([]string, diag.List) {
	var lines []string
	var diags diag.List
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := sc.Text()
		if len(text) > maxLineLength {
			diags.Add(diag.Pre, file, lineNo, "line exceeds %d characters", maxLineLength)
			continue
		}
		lines = append(lines, text)
	}
	if err := sc.Err(); err != nil {
		diags.Add(diag.Pre, file, 0, "read error: %s", err)
	}
	return lines, diags
}

// normalize strips a ';' comment, collapses interior whitespace runs to
// a single space, and trims leading/trailing whitespace.
func normalize(raw string) string {
	if idx := strings.IndexByte(raw, ';'); idx >= 0 {
		raw = raw[:idx]
	}
	fields := strings.Fields(raw)
	return strings.Join(fields, " ")
}

type headRest struct {
	head string
	rest string
}

func splitFirst(s string) headRest {
	if sp := strings.IndexByte(s, ' '); sp >= 0 {
		return headRest{head: s[:sp], rest: strings.TrimSpace(s[sp+1:])}
	}
	return headRest{head: s}
}

// splitLabel peels off a "NAME:" prefix, if present, from an already
// normalized line.
func splitLabel(norm string) (label, rest string) {
	fields := strings.SplitN(norm, " ", 2)
	first := fields[0]
	if strings.HasSuffix(first, ":") {
		label = strings.TrimSuffix(first, ":")
		if len(fields) == 2 {
			rest = fields[1]
		}
		return label, rest
	}
	return "", norm
}

// scanLabels pre-scans every raw line for a "NAME:" prefix so that mcro
// declarations can reject a name colliding with a source label, without
// rewinding the file the way the original C implementation does.
func scanLabels(rawLines []string) map[string]bool {
	labels := make(map[string]bool)
	for _, raw := range rawLines {
		norm := normalize(raw)
		if norm == "" {
			continue
		}
		label, _ := splitLabel(norm)
		if label != "" {
			labels[label] = true
		}
	}
	return labels
}
