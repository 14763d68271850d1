// Package record reads label records: an identifier followed by up to four
// text fields (line 1 left, line 1 right, line 2 left, line 2 right).
package record

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/ByLCY/engraver/layout"
)

// MaxFields is the number of text fields a record may carry.
const MaxFields = 4

// ErrTooManyFields marks a record with more than MaxFields text fields.
var ErrTooManyFields = errors.New("too many text fields")

// Record is one label: two physical lines, each optionally two columns.
type Record struct {
	ID     string
	Fields [MaxFields]string
	// Line is the 1-based line number in the source where the record starts.
	Line int
	// Err is set when the record itself is malformed. Such a record is still
	// returned so callers can report it by ID and go on with the rest.
	Err error
}

// RawLines returns the two physical lines, top first, joining the left and
// right column with the separator's delimiter. A line whose right field is
// empty is passed through unchanged, so a left field may carry its own
// inline separator.
func (r Record) RawLines(sep layout.Separator) []string {
	lines := make([]string, 0, MaxFields/2)
	for i := 0; i < MaxFields; i += 2 {
		left, right := r.Fields[i], r.Fields[i+1]
		if right == "" {
			lines = append(lines, left)
			continue
		}
		lines = append(lines, left+sep.Join()+right)
	}
	return lines
}

// Reader reads records from delimited text. Lines starting with '#' are
// comments; blank lines are skipped.
type Reader struct {
	csv *csv.Reader
}

// NewReader returns a Reader using delim between fields.
func NewReader(r io.Reader, delim rune) *Reader {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &Reader{csv: cr}
}

// Read returns the next record, or io.EOF.
func (r *Reader) Read() (Record, error) {
	fields, err := r.csv.Read()
	if err != nil {
		return Record{}, err
	}
	line, _ := r.csv.FieldPos(0)
	rec := Record{ID: fields[0], Line: line}
	copy(rec.Fields[:], fields[1:])
	if n := len(fields) - 1; n > MaxFields {
		rec.Err = fmt.Errorf("record: line %d: %d text fields, at most %d allowed: %w", line, n, MaxFields, ErrTooManyFields)
	}
	return rec, nil
}

// ReadAll reads every record. Records with too many fields are returned with
// Err set; only a syntax error in the input stops reading.
func ReadAll(r io.Reader, delim rune) ([]Record, error) {
	rd := NewReader(r, delim)
	var out []Record
	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}
