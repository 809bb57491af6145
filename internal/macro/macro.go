/*
	   Macro table for the pre-assembler.

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

// Package macro holds macro definitions collected by the pre-assembler:
// a flat (non-nested) name-to-body table built during a single
// definition scan.
package macro

import (
	"fmt"

	"github.com/rcornwell/casm/internal/symtab"
)

// Macro is one mcro/mcroend definition.
type Macro struct {
	Name string
	Body []string // normalized body lines, verbatim, in source order
}

// Table is a per-file macro table. The zero value is ready to use.
type Table struct {
	byName map[string]*Macro
}

// Define records a new macro with no body yet (the body is attached by
// Complete once the matching mcroend is seen). It fails if name is
// already defined.
func (t *Table) Define(name string) error {
	if t.byName == nil {
		t.byName = make(map[string]*Macro)
	}
	if _, exists := t.byName[name]; exists {
		return fmt.Errorf("duplicate macro definition %q", name)
	}
	t.byName[name] = &Macro{Name: name}
	return nil
}

// Complete attaches body to the most recently Define-d macro named name.
func (t *Table) Complete(name string, body []string) {
	if m, ok := t.byName[name]; ok {
		m.Body = body
	}
}

// Find looks up a macro by name.
func (t *Table) Find(name string) (*Macro, bool) {
	m, ok := t.byName[name]
	return m, ok
}

// ValidName reports whether name satisfies the symbol-name rule: 1-30
// characters, first alphabetic, the rest alphanumeric.
func ValidName(name string) bool {
	return symtab.ValidName(name)
}
