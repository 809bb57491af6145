/*
 * casm - Configuration file parser test set.
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

package config

import (
	"strings"
	"testing"
)

func TestParseKnownSettings(t *testing.T) {
	src := "# a comment\nLogLevel debug\nMaxLineLength 120\nOutputDir /tmp/out\n"
	s, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", s.LogLevel)
	}
	if s.MaxLineLength != 120 {
		t.Errorf("MaxLineLength = %d, want 120", s.MaxLineLength)
	}
	if s.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q, want /tmp/out", s.OutputDir)
	}
}

func TestParseBlankAndCommentLinesIgnored(t *testing.T) {
	src := "\n# nothing here\n   \nLogLevel warn\n"
	s, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", s.LogLevel)
	}
}

func TestParseUnknownKeyIsError(t *testing.T) {
	_, err := Parse(strings.NewReader("Bogus 1\n"))
	if err == nil {
		t.Fatal("expected an error for an unknown setting")
	}
}

func TestParseBadMaxLineLengthIsError(t *testing.T) {
	_, err := Parse(strings.NewReader("MaxLineLength nope\n"))
	if err == nil {
		t.Fatal("expected an error for a non-numeric MaxLineLength")
	}
}

func TestParseKeyIsCaseInsensitive(t *testing.T) {
	s, err := Parse(strings.NewReader("loglevel error\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want error", s.LogLevel)
	}
}
