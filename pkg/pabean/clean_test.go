package pabean

import "testing"

func TestClean(t *testing.T) {
	if clean("  PT CONTOH  ") == nil || *clean("  PT CONTOH  ") != "PT CONTOH" {
		t.Fatalf("clean should trim")
	}
	if clean("") != nil {
		t.Fatalf("empty should be nil")
	}
	if clean("   ") != nil {
		t.Fatalf("blank should be nil")
	}
	if clean(" - ") != nil {
		t.Fatalf("dash placeholder should be nil")
	}
}

func TestParseAngka(t *testing.T) {
	v, err := parseAngka("1,000.50")
	if err != nil || v != 1000.5 {
		t.Fatalf("expected 1000.5 got %v err=%v", v, err)
	}
	v, err = parseAngka("25-")
	if err != nil || v != 25 {
		t.Fatalf("expected 25 got %v err=%v", v, err)
	}
	if _, err = parseAngka("abc"); err == nil {
		t.Fatalf("expected error for non-numeric input")
	}
}

func TestCollapseSpaces(t *testing.T) {
	got := collapseSpaces("  STEEL \n PIPES\t(PCE) ")
	if got != "STEEL PIPES (PCE)" {
		t.Fatalf("got %q", got)
	}
}
