package codeimage

import (
	"testing"

	"github.com/rcornwell/casm/internal/word"
)

func TestAppendAndAt(t *testing.T) {
	var img Image
	idx := img.Append(word.Word(0xABCDEF))
	if idx != 0 {
		t.Fatalf("idx = %d, want 0", idx)
	}
	if img.At(0) != word.Word(0xABCDEF) {
		t.Errorf("At(0) = %x", img.At(0))
	}
	if img.Len() != 1 {
		t.Errorf("Len() = %d, want 1", img.Len())
	}
}

func TestSetPatches(t *testing.T) {
	var img Image
	img.Append(0)
	img.Set(0, word.Word(0x123456))
	if img.At(0) != word.Word(0x123456) {
		t.Errorf("At(0) = %x after Set", img.At(0))
	}
}

func TestAppendMasks(t *testing.T) {
	var img Image
	img.Append(word.Word(0xFFFFFFFF))
	if img.At(0) != word.Mask24 {
		t.Errorf("Append did not mask to 24 bits: %x", img.At(0))
	}
}

func TestBaseAddress(t *testing.T) {
	if BaseAddress != 100 {
		t.Errorf("BaseAddress = %d, want 100", BaseAddress)
	}
}
