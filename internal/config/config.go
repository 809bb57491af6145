/*
 * casm - Configuration file parser
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

// Package config parses the assembler's optional settings file: flat
// "KEY value" lines, '#' comments, blank lines ignored.
package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Settings holds the non-structural knobs read from the settings file.
type Settings struct {
	LogLevel      string // "debug", "info", "warn", "error"; stored only, cmd/casm does not apply it
	MaxLineLength int    // overrides preassembler.MaxLineLength when > 0
	OutputDir     string // directory for .ob/.ent/.ext/.am, "" means alongside input
}

// optionLine tracks the current parse position, mirroring the teacher's
// configparser line-by-line cursor.
type optionLine struct {
	line string
	pos  int
}

func (o *optionLine) token() (string, bool) {
	for o.pos < len(o.line) && o.line[o.pos] == ' ' {
		o.pos++
	}
	start := o.pos
	for o.pos < len(o.line) && o.line[o.pos] != ' ' {
		o.pos++
	}
	if start == o.pos {
		return "", false
	}
	return o.line[start:o.pos], true
}

// Parse reads settings from r. Unknown keys are errors; this keeps a
// typo from silently doing nothing.
func Parse(r io.Reader) (Settings, error) {
	var s Settings
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		if idx := strings.IndexByte(raw, '#'); idx >= 0 {
			raw = raw[:idx]
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		ol := &optionLine{line: raw}
		key, ok := ol.token()
		if !ok {
			continue
		}
		value, _ := ol.token()

		switch strings.ToLower(key) {
		case "loglevel":
			s.LogLevel = value
		case "maxlinelength":
			n, err := strconv.Atoi(value)
			if err != nil {
				return s, fmt.Errorf("line %d: bad MaxLineLength %q: %w", lineNo, value, err)
			}
			s.MaxLineLength = n
		case "outputdir":
			s.OutputDir = value
		default:
			return s, fmt.Errorf("line %d: unknown setting %q", lineNo, key)
		}
	}
	if err := sc.Err(); err != nil {
		return s, err
	}
	return s, nil
}
