package symtab

import "testing"

func TestAddAndFind(t *testing.T) {
	var tab Table
	if err := tab.Add("X", 103, Data); err != nil {
		t.Fatalf("Add: %v", err)
	}
	sym, ok := tab.Find("X")
	if !ok {
		t.Fatal("expected X to be found")
	}
	if sym.Value != 103 || sym.Attr != Data {
		t.Errorf("got %+v", sym)
	}
}

func TestAddDuplicate(t *testing.T) {
	var tab Table
	if err := tab.Add("X", 100, Code); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := tab.Add("X", 200, Code); err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestRelocateData(t *testing.T) {
	var tab Table
	tab.Add("X", 0, Data)
	tab.Add("M", 100, Code)
	tab.RelocateData(103)
	x, _ := tab.Find("X")
	m, _ := tab.Find("M")
	if x.Value != 103 {
		t.Errorf("X.Value = %d, want 103", x.Value)
	}
	if m.Value != 100 {
		t.Errorf("M.Value changed: %d", m.Value)
	}
}

func TestMarkEntry(t *testing.T) {
	var tab Table
	tab.Add("LBL", 100, Code)
	if err := tab.MarkEntry("LBL"); err != nil {
		t.Fatalf("MarkEntry: %v", err)
	}
	sym, _ := tab.Find("LBL")
	if sym.Attr != Relocatable {
		t.Errorf("attr = %c, want %c", sym.Attr, Relocatable)
	}

	if err := tab.MarkEntry("NOPE"); err != ErrEntryUndefined {
		t.Errorf("err = %v, want ErrEntryUndefined", err)
	}

	tab.Add("EXT", 0, External)
	if err := tab.MarkEntry("EXT"); err != ErrEntryExternNotAllowed {
		t.Errorf("err = %v, want ErrEntryExternNotAllowed", err)
	}
}

func TestValidName(t *testing.T) {
	cases := map[string]bool{
		"X":                             true,
		"MAIN":                         true,
		"a1":                            true,
		"1a":                            false,
		"":                              false,
		"_x":                            false,
		"tooLongNameThatExceedsThirtyChars": false,
	}
	for name, want := range cases {
		if got := ValidName(name); got != want {
			t.Errorf("ValidName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNamesInsertionOrder(t *testing.T) {
	var tab Table
	tab.Add("C", 0, Code)
	tab.Add("A", 0, Code)
	tab.Add("B", 0, Code)
	got := tab.Names()
	want := []string{"C", "A", "B"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
