/*
	   Per-file assembler pipeline.

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

// Package assembler owns the per-file Context that drives one base
// name through the pre-assembler, first pass, and second pass, and
// tears its tables down regardless of outcome.
package assembler

import (
	"fmt"
	"os"

	"github.com/rcornwell/casm/internal/codeimage"
	"github.com/rcornwell/casm/internal/diag"
	"github.com/rcornwell/casm/internal/objfile"
	"github.com/rcornwell/casm/internal/pass1"
	"github.com/rcornwell/casm/internal/pass2"
	"github.com/rcornwell/casm/internal/placeholder"
	"github.com/rcornwell/casm/internal/preassembler"
	"github.com/rcornwell/casm/internal/symtab"
)

// State names a point in the per-file pipeline state machine.
type State int

const (
	Start State = iota
	PreOK
	FirstOK
	SecondOK
	Emitted
	Failed
)

// Context owns every mutable table for a single input file's run. A
// fresh Context is created per base name and discarded after.
type Context struct {
	Base string

	Syms         symtab.Table
	Code         codeimage.Image
	Data         codeimage.Image
	Placeholders []placeholder.Placeholder

	IntermediateLines []string

	Entries   []objfile.Reference
	Externals []objfile.Reference

	State State
	Diags diag.List
}

// New returns a fresh Context for base.
func New(base string) *Context {
	return &Context{Base: base, State: Start}
}

// Options configures a single Run.
type Options struct {
	MaxLineLength    int
	KeepIntermediate bool
	OutputDir        string
}

// Run drives ctx through the pre-assembler, first pass, and second
// pass, reading ctx.Base+".as" and, on success, writing ctx.Base+".ob"
// and the optional ".ent"/".ext" sidecars. It returns true iff the
// whole pipeline succeeded with zero diagnostics.
func Run(ctx *Context, opts Options) bool {
	srcPath := ctx.Base + ".as"
	amPath := outputPath(opts.OutputDir, ctx.Base, ".am")
	obPath := outputPath(opts.OutputDir, ctx.Base, ".ob")
	entPath := outputPath(opts.OutputDir, ctx.Base, ".ent")
	extPath := outputPath(opts.OutputDir, ctx.Base, ".ext")

	src, err := os.Open(srcPath)
	if err != nil {
		ctx.Diags.Add(diag.Pre, srcPath, 0, "cannot open input: %s", err)
		ctx.State = Failed
		removeStale(obPath, entPath, extPath)
		return false
	}
	defer src.Close()

	preResult := preassembler.Run(src, srcPath, opts.MaxLineLength)
	if preResult.Diags.Len() > 0 {
		ctx.Diags = append(ctx.Diags, preResult.Diags...)
		ctx.State = Failed
		removeStale(obPath, entPath, extPath)
		return false
	}
	ctx.IntermediateLines = preResult.Lines
	ctx.State = PreOK

	if err := writeIntermediate(amPath, ctx.IntermediateLines); err != nil {
		ctx.Diags.Add(diag.Pre, amPath, 0, "cannot write intermediate file: %s", err)
		ctx.State = Failed
		removeStale(obPath, entPath, extPath)
		return false
	}
	if !opts.KeepIntermediate {
		defer os.Remove(amPath)
	}

	p1 := pass1.Run(ctx.IntermediateLines, srcPath, &ctx.Syms, &ctx.Code, &ctx.Data)
	if p1.Diags.Len() > 0 {
		ctx.Diags = append(ctx.Diags, p1.Diags...)
		ctx.State = Failed
		removeStale(obPath, entPath, extPath)
		return false
	}
	ctx.Placeholders = p1.Placeholders
	ctx.State = FirstOK

	p2 := pass2.Run(ctx.IntermediateLines, srcPath, &ctx.Syms, &ctx.Code, ctx.Placeholders)
	if p2.Diags.Len() > 0 {
		ctx.Diags = append(ctx.Diags, p2.Diags...)
		ctx.State = Failed
		removeStale(obPath, entPath, extPath)
		return false
	}
	ctx.Entries = p2.Entries
	ctx.Externals = p2.Externals
	ctx.State = SecondOK

	if err := emit(obPath, entPath, extPath, &ctx.Code, &ctx.Data, ctx.Entries, ctx.Externals); err != nil {
		ctx.Diags.Add(diag.Second, obPath, 0, "cannot write output: %s", err)
		ctx.State = Failed
		removeStale(obPath, entPath, extPath)
		return false
	}

	ctx.State = Emitted
	return true
}

func outputPath(dir, base, ext string) string {
	if dir == "" {
		return base + ext
	}
	return dir + "/" + base + ext
}

func writeIntermediate(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return preassembler.WriteIntermediate(f, lines)
}

func emit(obPath, entPath, extPath string, code, data *codeimage.Image, entries, externals []objfile.Reference) error {
	ob, err := os.Create(obPath)
	if err != nil {
		return err
	}
	defer ob.Close()
	if err := objfile.WriteObject(ob, code, data); err != nil {
		return err
	}

	if len(entries) > 0 {
		ent, err := os.Create(entPath)
		if err != nil {
			return err
		}
		defer ent.Close()
		if err := objfile.WriteReferences(ent, entries); err != nil {
			return err
		}
	}

	if len(externals) > 0 {
		ext, err := os.Create(extPath)
		if err != nil {
			return err
		}
		defer ext.Close()
		if err := objfile.WriteReferences(ext, externals); err != nil {
			return err
		}
	}

	return nil
}

// removeStale deletes any output files left over from a previous
// successful run of this base name.
func removeStale(paths ...string) {
	for _, p := range paths {
		os.Remove(p)
	}
}

// Summary formats a one-line result for ctx, for the driver's final
// report.
func Summary(ctx *Context) string {
	if ctx.State == Emitted {
		return fmt.Sprintf("%s: ok", ctx.Base)
	}
	return fmt.Sprintf("%s: %d error(s)", ctx.Base, ctx.Diags.Len())
}
