package preassembler

import (
	"strings"
	"testing"
)

func TestNormalizeStripsCommentsAndWhitespace(t *testing.T) {
	res := Run(strings.NewReader("  mov   r1, r2   ; a comment\n"), "t.as", 0)
	if res.Diags.Len() != 0 {
		t.Fatalf("unexpected diags: %v", res.Diags)
	}
	if len(res.Lines) != 1 || res.Lines[0] != "mov r1, r2" {
		t.Errorf("got %v", res.Lines)
	}
}

func TestBlankLinesDropped(t *testing.T) {
	res := Run(strings.NewReader("\n   \n; only a comment\nstop\n"), "t.as", 0)
	if res.Diags.Len() != 0 {
		t.Fatalf("unexpected diags: %v", res.Diags)
	}
	if len(res.Lines) != 1 || res.Lines[0] != "stop" {
		t.Errorf("got %v", res.Lines)
	}
}

func TestLineTooLong(t *testing.T) {
	long := strings.Repeat("a", 81)
	res := Run(strings.NewReader(long+"\n"), "t.as", 0)
	if res.Diags.Len() == 0 {
		t.Fatal("expected a line-too-long diagnostic")
	}
}

func TestMacroExpansionScenarioS5(t *testing.T) {
	src := "mcro GREET\nmov r1, r2\nmcroend\nGREET\nstop\n"
	res := Run(strings.NewReader(src), "t.as", 0)
	if res.Diags.Len() != 0 {
		t.Fatalf("unexpected diags: %v", res.Diags)
	}
	want := []string{"mov r1, r2", "stop"}
	if len(res.Lines) != len(want) {
		t.Fatalf("got %v, want %v", res.Lines, want)
	}
	for i := range want {
		if res.Lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, res.Lines[i], want[i])
		}
	}
}

func TestMacroExpansionWithLabel(t *testing.T) {
	src := "mcro GREET\nmov r1, r2\nmcroend\nX: GREET\nstop\n"
	res := Run(strings.NewReader(src), "t.as", 0)
	if res.Diags.Len() != 0 {
		t.Fatalf("unexpected diags: %v", res.Diags)
	}
	want := []string{"X: mov r1, r2", "stop"}
	if len(res.Lines) != len(want) {
		t.Fatalf("got %v, want %v", res.Lines, want)
	}
	for i := range want {
		if res.Lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, res.Lines[i], want[i])
		}
	}
}

func TestDuplicateMacroDefinition(t *testing.T) {
	src := "mcro M\nstop\nmcroend\nmcro M\nstop\nmcroend\n"
	res := Run(strings.NewReader(src), "t.as", 0)
	if res.Diags.Len() == 0 {
		t.Fatal("expected duplicate macro diagnostic")
	}
}

func TestMacroNameCollidesWithLabel(t *testing.T) {
	src := "mcro FOO\nstop\nmcroend\nFOO: mov r1, r2\n"
	res := Run(strings.NewReader(src), "t.as", 0)
	if res.Diags.Len() == 0 {
		t.Fatal("expected label-collision diagnostic")
	}
}

func TestOrphanMcroendTolerated(t *testing.T) {
	src := "mcroend\nstop\n"
	res := Run(strings.NewReader(src), "t.as", 0)
	if res.Diags.Len() != 0 {
		t.Fatalf("unexpected diags: %v", res.Diags)
	}
	if len(res.Lines) != 1 || res.Lines[0] != "stop" {
		t.Errorf("got %v", res.Lines)
	}
}

func TestEOFInsideMacroTolerated(t *testing.T) {
	src := "mcro M\nmov r1, r2\n"
	res := Run(strings.NewReader(src), "t.as", 0)
	if res.Diags.Len() != 0 {
		t.Fatalf("unexpected diags: %v", res.Diags)
	}
	if len(res.Lines) != 0 {
		t.Errorf("expected no output lines, got %v", res.Lines)
	}
}

func TestWriteIntermediate(t *testing.T) {
	var sb strings.Builder
	if err := WriteIntermediate(&sb, []string{"stop"}); err != nil {
		t.Fatalf("WriteIntermediate: %v", err)
	}
	want := "; SRCLINE 1\nstop\n"
	if sb.String() != want {
		t.Errorf("got %q, want %q", sb.String(), want)
	}
}
