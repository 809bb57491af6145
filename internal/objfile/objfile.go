/*
	   Object, entries, and externals file formats.

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

// Package objfile writes (and, for tests, reads back) the three output
// file formats the second pass emits: the object file and its entry and
// external sidecar files.
package objfile

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rcornwell/casm/internal/codeimage"
	"github.com/rcornwell/casm/internal/word"
)

// Reference is one name/address pair, used for both the entry and
// external reference lists.
type Reference struct {
	Name    string
	Address int
}

// WriteObject writes the .ob format: a header line with code and data
// word counts, then one "%07d %06x" line per word, code words first.
func WriteObject(w io.Writer, code, data *codeimage.Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", code.Len(), data.Len()); err != nil {
		return err
	}
	addr := codeimage.BaseAddress
	for _, wd := range code.Words() {
		if _, err := fmt.Fprintf(bw, "%07d %06x\n", addr, uint32(wd)); err != nil {
			return err
		}
		addr++
	}
	for _, wd := range data.Words() {
		if _, err := fmt.Fprintf(bw, "%07d %06x\n", addr, uint32(wd)); err != nil {
			return err
		}
		addr++
	}
	return bw.Flush()
}

// WriteReferences writes one "%s %07d" line per reference, used for
// both .ent and .ext.
func WriteReferences(w io.Writer, refs []Reference) error {
	bw := bufio.NewWriter(w)
	for _, r := range refs {
		if _, err := fmt.Fprintf(bw, "%s %07d\n", r.Name, r.Address); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadObject parses a .ob file back into a code and data word slice, for
// tests exercising the round-trip invariant. It is not used by the CLI.
func ReadObject(r io.Reader) (cw, dw int, words []word.Word, err error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return 0, 0, nil, fmt.Errorf("empty object file")
	}
	if _, err := fmt.Sscanf(sc.Text(), "%d %d", &cw, &dw); err != nil {
		return 0, 0, nil, fmt.Errorf("malformed header: %w", err)
	}
	words = make([]word.Word, 0, cw+dw)
	for sc.Scan() {
		var addr int
		var val uint32
		if _, err := fmt.Sscanf(sc.Text(), "%d %x", &addr, &val); err != nil {
			return 0, 0, nil, fmt.Errorf("malformed word line %q: %w", sc.Text(), err)
		}
		words = append(words, word.Word(val))
	}
	if err := sc.Err(); err != nil {
		return 0, 0, nil, err
	}
	if len(words) != cw+dw {
		return 0, 0, nil, fmt.Errorf("word count mismatch: header says %d, got %d", cw+dw, len(words))
	}
	return cw, dw, words, nil
}
