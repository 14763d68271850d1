package record

import (
	"errors"
	"strings"
	"testing"

	"github.com/ByLCY/engraver/layout"
)

const sample = `# id;line1 left;line1 right;line2 left;line2 right
A-01;Christian;;Lorem Ipsum;
A-02;Pump 3;12 V;Valve;NC

A-03;Left  Right
A-04;  spaced  text;x
`

func TestReadAll(t *testing.T) {
	recs, err := ReadAll(strings.NewReader(sample), ';')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("expected 4 records, got %d", len(recs))
	}
	if recs[0].ID != "A-01" || recs[0].Line != 2 {
		t.Fatalf("first record = %+v", recs[0])
	}
	if recs[1].Fields != [MaxFields]string{"Pump 3", "12 V", "Valve", "NC"} {
		t.Fatalf("second record fields = %q", recs[1].Fields)
	}
	if recs[2].Line != 5 || recs[2].Fields[0] != "Left  Right" || recs[2].Fields[1] != "" {
		t.Fatalf("third record = %+v", recs[2])
	}
	if recs[3].Fields[0] != "  spaced  text" {
		t.Fatalf("leading spaces must be preserved: %q", recs[3].Fields[0])
	}
}

func TestReadTooManyFields(t *testing.T) {
	recs, err := ReadAll(strings.NewReader("ok;a\nbad;1;2;3;4;5\nok2;b\n"), ';')
	if err != nil {
		t.Fatalf("a malformed record must not stop reading: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	bad := recs[1]
	if bad.ID != "bad" || !errors.Is(bad.Err, ErrTooManyFields) || !strings.Contains(bad.Err.Error(), "line 2") {
		t.Fatalf("unexpected record %+v", bad)
	}
	if recs[0].Err != nil || recs[2].Err != nil || recs[2].ID != "ok2" {
		t.Fatalf("siblings must be intact: %+v", recs)
	}
}

func TestRawLines(t *testing.T) {
	rec := Record{ID: "x", Fields: [MaxFields]string{"Pump 3", "12 V", "Valve", ""}}
	got := rec.RawLines(layout.SeparatorSpaces)
	if len(got) != 2 || got[0] != "Pump 3  12 V" || got[1] != "Valve" {
		t.Fatalf("spaces mode = %q", got)
	}
	got = rec.RawLines(layout.SeparatorUnit)
	if got[0] != "Pump 3\x1f12 V" {
		t.Fatalf("unit mode = %q", got[0])
	}

	// 两种模式排版结果一致。
	e := layout.NewEngine(widthOne{})
	a, err := e.Typeset(rec.RawLines(layout.SeparatorSpaces)[0])
	if err != nil {
		t.Fatalf("spaces: %v", err)
	}
	e.Separator = layout.SeparatorUnit
	b, err := e.Typeset(rec.RawLines(layout.SeparatorUnit)[0])
	if err != nil {
		t.Fatalf("unit: %v", err)
	}
	if a.Scaling != b.Scaling || len(a.Galley.Entries) != len(b.Galley.Entries) {
		t.Fatalf("modes disagree: %+v vs %+v", a.Scaling, b.Scaling)
	}
}

type widthOne struct{}

func (widthOne) Lookup(r rune) (layout.Character, error) {
	return layout.Character{Key: r, UnitWidth: 1}, nil
}

func TestName(t *testing.T) {
	rec := Record{ID: "A/01", Line: 7, Fields: [MaxFields]string{"Pump 3", "12 V"}}
	cases := map[string]string{
		"${id}":               "A_01",
		"label-${ id }.nc":    "label-A_01.nc",
		"${line}_${field1}":   "7_Pump_3",
		"${field2}-${field9}": "12_V-__field9_",
		"../${id}":            "_A_01",
		"plain":               "plain",
	}
	for tmpl, want := range cases {
		if got := Name(tmpl, rec); got != want {
			t.Fatalf("Name(%q) = %q, want %q", tmpl, got, want)
		}
	}
}

func TestNameFallback(t *testing.T) {
	rec := Record{Line: 12}
	if got := Name("${id}", rec); got != "record-12" {
		t.Fatalf("empty id = %q", got)
	}
	if got := Name("", Record{ID: "x", Line: 3}); got != "record-3" {
		t.Fatalf("empty template = %q", got)
	}
}
