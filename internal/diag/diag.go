// Package diag defines the diagnostic record shared by every pipeline
// stage, so that error reporting stays a caller concern: stages return
// diagnostics instead of printing them.
package diag

import "fmt"

// Stage identifies which pipeline stage raised a Diagnostic.
type Stage string

const (
	Pre    Stage = "pre"
	First  Stage = "first"
	Second Stage = "second"
)

// Diagnostic is one reported problem, optionally tied to a source line.
type Diagnostic struct {
	Stage   Stage
	File    string
	Line    int // 1-based line, 0 if not applicable: a source line for the pre-assembler, a line of the intermediate text for the first and second pass
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: [%s] %s", d.File, d.Line, d.Stage, d.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", d.File, d.Stage, d.Message)
}

// List is a convenience collector used by each stage.
type List []Diagnostic

func (l *List) Add(stage Stage, file string, line int, format string, args ...any) {
	*l = append(*l, Diagnostic{Stage: stage, File: file, Line: line, Message: fmt.Sprintf(format, args...)})
}

func (l List) Len() int { return len(l) }
