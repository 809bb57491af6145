package pass2

import (
	"testing"

	"github.com/rcornwell/casm/internal/codeimage"
	"github.com/rcornwell/casm/internal/placeholder"
	"github.com/rcornwell/casm/internal/symtab"
	"github.com/rcornwell/casm/internal/word"
)

func TestDirectPatchNonExtern(t *testing.T) {
	var syms symtab.Table
	syms.Add("X", 104, symtab.Data)
	var code codeimage.Image
	code.Append(0) // header
	code.Append(0) // immediate
	code.Append(0) // placeholder slot

	phs := []placeholder.Placeholder{{WordIndex: 2, InstrIC: 100, Mode: placeholder.Direct, Label: "X"}}
	res := Run(nil, "t.as", &syms, &code, phs)
	if res.Diags.Len() != 0 {
		t.Fatalf("unexpected diags: %v", res.Diags)
	}
	w := code.At(2)
	if are := w & 0x7; are != word.AREReloc {
		t.Errorf("ARE = %d, want %d", are, word.AREReloc)
	}
	if v := (w >> 3) & 0x1FFFFF; v != 104 {
		t.Errorf("value = %d, want 104", v)
	}
}

func TestDirectPatchExtern(t *testing.T) {
	var syms symtab.Table
	syms.Add("EXT", 0, symtab.External)
	var code codeimage.Image
	code.Append(0)
	code.Append(0)

	phs := []placeholder.Placeholder{{WordIndex: 1, InstrIC: 100, Mode: placeholder.Direct, Label: "EXT"}}
	res := Run(nil, "t.as", &syms, &code, phs)
	if res.Diags.Len() != 0 {
		t.Fatalf("unexpected diags: %v", res.Diags)
	}
	w := code.At(1)
	if w != word.Word(word.AREExternal) {
		t.Errorf("word = %x, want %x", w, word.AREExternal)
	}
	if len(res.Externals) != 1 || res.Externals[0].Name != "EXT" || res.Externals[0].Address != 101 {
		t.Errorf("externals = %+v", res.Externals)
	}
}

func TestRelativePatchNonExtern(t *testing.T) {
	var syms symtab.Table
	syms.Add("LOOP", 102, symtab.Code)
	var code codeimage.Image
	code.Append(0)
	code.Append(0)

	phs := []placeholder.Placeholder{{WordIndex: 1, InstrIC: 100, Mode: placeholder.Relative, Label: "LOOP"}}
	res := Run(nil, "t.as", &syms, &code, phs)
	if res.Diags.Len() != 0 {
		t.Fatalf("unexpected diags: %v", res.Diags)
	}
	w := code.At(1)
	if are := w & 0x7; are != word.AREAbsolute {
		t.Errorf("ARE = %d, want %d", are, word.AREAbsolute)
	}
	if v := int((w >> 3) & 0x1FFFFF); v != 2 {
		t.Errorf("offset = %d, want 2", v)
	}
}

func TestRelativeExternIsError(t *testing.T) {
	// spec.md S3: extern used with '&' in relative mode is an error.
	var syms symtab.Table
	syms.Add("SUB", 0, symtab.External)
	var code codeimage.Image
	code.Append(0)

	phs := []placeholder.Placeholder{{WordIndex: 0, InstrIC: 100, Mode: placeholder.Relative, Label: "SUB"}}
	res := Run(nil, "t.as", &syms, &code, phs)
	if res.Diags.Len() == 0 {
		t.Fatal("expected extern-used-with-& error")
	}
}

func TestUndefinedSymbolIsError(t *testing.T) {
	var syms symtab.Table
	var code codeimage.Image
	code.Append(0)

	phs := []placeholder.Placeholder{{WordIndex: 0, InstrIC: 100, Mode: placeholder.Direct, Label: "NOPE"}}
	res := Run(nil, "t.as", &syms, &code, phs)
	if res.Diags.Len() == 0 {
		t.Fatal("expected undefined symbol error")
	}
}

func TestEntryProcessing(t *testing.T) {
	var syms symtab.Table
	syms.Add("LBL", 100, symtab.Code)
	var code codeimage.Image

	res := Run([]string{"entry LBL"}, "t.as", &syms, &code, nil)
	if res.Diags.Len() != 0 {
		t.Fatalf("unexpected diags: %v", res.Diags)
	}
	if len(res.Entries) != 1 || res.Entries[0].Name != "LBL" || res.Entries[0].Address != 100 {
		t.Errorf("entries = %+v", res.Entries)
	}
	sym, _ := syms.Find("LBL")
	if sym.Attr != symtab.Relocatable {
		t.Errorf("LBL attr = %c, want R", sym.Attr)
	}
}

func TestEntryUndefinedIsError(t *testing.T) {
	var syms symtab.Table
	var code codeimage.Image
	res := Run([]string{"entry NOPE"}, "t.as", &syms, &code, nil)
	if res.Diags.Len() == 0 {
		t.Fatal("expected undefined entry error")
	}
}

func TestEntryExternIsError(t *testing.T) {
	var syms symtab.Table
	syms.Add("EXT", 0, symtab.External)
	var code codeimage.Image
	res := Run([]string{"entry EXT"}, "t.as", &syms, &code, nil)
	if res.Diags.Len() == 0 {
		t.Fatal("expected extern-cannot-be-entry error")
	}
}
