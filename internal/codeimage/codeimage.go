// Package codeimage is the append-only word sequence shared by the code
// and data images, addressed starting from a per-image base.
package codeimage

import "github.com/rcornwell/casm/internal/word"

// baseAddress is the first address assigned to either image; the code
// image starts here, and the data image starts immediately after the
// code image ends.
const baseAddress = 100

// Image is an ordered, append-only sequence of words.
type Image struct {
	words []word.Word
}

// Append adds w (masked to 24 bits) to the end of the image and returns
// its index.
func (img *Image) Append(w word.Word) int {
	img.words = append(img.words, w.Mask())
	return len(img.words) - 1
}

// Set overwrites the word at index i, used by the second pass to patch a
// placeholder.
func (img *Image) Set(i int, w word.Word) {
	img.words[i] = w.Mask()
}

// At returns the word at index i.
func (img *Image) At(i int) word.Word {
	return img.words[i]
}

// Len returns the number of words in the image.
func (img *Image) Len() int {
	return len(img.words)
}

// Words returns the underlying word sequence. Callers must not retain a
// reference past the image's lifetime.
func (img *Image) Words() []word.Word {
	return img.words
}

// BaseAddress is the address of the first word ever placed in any image
// (the code image's starting address).
const BaseAddress = baseAddress
