// Package chrfont reads single-stroke engraving fonts in the CHR text format.
//
// Each glyph occupies one line:
//
//	# comment
//	CHR_41 14 ;2,0 7,18 12,0 ;4,6 10,6
//
// CHR_ is followed by the character code in hex, then the cell width and one
// or more strokes. Every stroke starts with ';' and lists x,y points in integer
// design units with the origin at the baseline-left of the cell.
package chrfont

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	chrLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n`},
		{Name: "Code", Pattern: `CHR_[0-9A-Fa-f]{2}`},
		{Name: "Int", Pattern: `[-+]?\d+`},
		{Name: "Punct", Pattern: `[;,]`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(chrLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

// File is the root AST node of a CHR font.
type File struct {
	Chars []*CharDef `parser:"Newline* ( @@ Newline* )*"`
}

// CharDef is a single glyph definition.
type CharDef struct {
	Pos     lexer.Position `parser:""`
	Code    CharCode       `parser:"@Code"`
	Width   int            `parser:"@Int"`
	Strokes []*StrokeDef   `parser:"@@+"`
}

// StrokeDef is a polyline introduced by ';'.
type StrokeDef struct {
	Points []*PointDef `parser:"';' @@+"`
}

// PointDef is an x,y pair in design units.
type PointDef struct {
	X int `parser:"@Int ','"`
	Y int `parser:"@Int"`
}

// CharCode converts the CHR_xx token into the character it names.
type CharCode rune

// Capture implements participle.Capture.
func (c *CharCode) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("character code capture requires value")
	}
	hex := strings.TrimPrefix(values[0], "CHR_")
	n, err := strconv.ParseUint(hex, 16, 8)
	if err != nil {
		return fmt.Errorf("invalid character code %q: %w", values[0], err)
	}
	*c = CharCode(n)
	return nil
}

// ParseFile parses the CHR syntax without building a font.
func ParseFile(r io.Reader) (*File, error) {
	return fileParser.Parse("", r)
}

// ParseFileString parses CHR syntax from a string.
func ParseFileString(input string) (*File, error) {
	return fileParser.ParseString("", input)
}
