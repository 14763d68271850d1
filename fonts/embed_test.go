package fonts_test

import (
	"bytes"
	"testing"

	"github.com/ByLCY/engraver/chrfont"
	"github.com/ByLCY/engraver/fonts"
)

func TestDefaultFontParses(t *testing.T) {
	data, err := fonts.Load(fonts.Default)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f, err := chrfont.Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Height() != 18 {
		t.Fatalf("height = %g, want 18", f.Height())
	}
	for _, r := range "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ -/.,:+()" {
		if !f.Has(r) {
			t.Fatalf("default font lacks %q", r)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := fonts.Load("embed:nope.chr"); err == nil {
		t.Fatalf("expected error for missing font")
	}
}
