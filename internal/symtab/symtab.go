/*
	   Symbol table.

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

// Package symtab implements the assembler's symbol table: an
// insertion-ordered mapping from name to (value, attribute).
package symtab

import (
	"fmt"
	"unicode"
)

// Attr is a symbol's attribute.
type Attr byte

const (
	Code       Attr = 'C' // defined in the code section
	Data       Attr = 'D' // defined in the data section
	External   Attr = 'E' // declared external, value fixed at 0
	Relocatable Attr = 'R' // a C or D symbol exported as an entry
)

// Symbol is one entry in the table.
type Symbol struct {
	Name  string
	Value int
	Attr  Attr
}

// Table is a per-file symbol table. The zero value is ready to use.
type Table struct {
	byName map[string]*Symbol
	order  []string
}

// Add inserts name with the given value and attribute. It fails if name
// is already present; callers are responsible for validating the name
// itself (length, character set) before calling Add.
func (t *Table) Add(name string, value int, attr Attr) error {
	if t.byName == nil {
		t.byName = make(map[string]*Symbol)
	}
	if _, exists := t.byName[name]; exists {
		return fmt.Errorf("duplicate symbol %q", name)
	}
	sym := &Symbol{Name: name, Value: value, Attr: attr}
	t.byName[name] = sym
	t.order = append(t.order, name)
	return nil
}

// Find looks up name and reports whether it exists.
func (t *Table) Find(name string) (Symbol, bool) {
	sym, ok := t.byName[name]
	if !ok {
		return Symbol{}, false
	}
	return *sym, true
}

// RelocateData adds offset to the value of every Data-attributed symbol.
// Called exactly once, at the end of a successful first pass, with
// offset equal to the final instruction counter.
func (t *Table) RelocateData(offset int) {
	for _, name := range t.order {
		sym := t.byName[name]
		if sym.Attr == Data {
			sym.Value += offset
		}
	}
}

// entry-marking result codes, mirroring the source's mark_entry return
// values (0 success, -1 not found, -2 extern-cannot-be-entry) as named
// errors instead of magic numbers.
var (
	ErrEntryUndefined        = fmt.Errorf("undefined symbol")
	ErrEntryExternNotAllowed = fmt.Errorf("extern symbol cannot be declared entry")
)

// MarkEntry promotes name's attribute to Relocatable. It is an error if
// name is absent, and an error (distinct from absence) if name is
// External: extern symbols may never be promoted to entries.
func (t *Table) MarkEntry(name string) error {
	sym, ok := t.byName[name]
	if !ok {
		return ErrEntryUndefined
	}
	if sym.Attr == External {
		return ErrEntryExternNotAllowed
	}
	sym.Attr = Relocatable
	return nil
}

// ValidName reports whether name satisfies the symbol-name rule: 1-30
// characters, first alphabetic, the rest alphanumeric. Macro names and
// extern/entry operands are validated the same way.
func ValidName(name string) bool {
	if len(name) == 0 || len(name) > 30 {
		return false
	}
	if !unicode.IsLetter(rune(name[0])) {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := rune(name[i])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

// Names returns symbol names in insertion order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}
