// Package glyph holds helpers that sit between the layout engine and a
// concrete glyph source.
package glyph

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/engraver/layout"
)

// Fallback wraps src so that characters missing from the font are retried
// without diacritics ("é" -> "e") and then in the other letter case. The
// returned Character keeps the requested rune as its key.
func Fallback(src layout.GlyphSource) layout.GlyphSource {
	return fallback{src: src}
}

type fallback struct {
	src layout.GlyphSource
}

func (f fallback) Lookup(r rune) (layout.Character, error) {
	c, err := f.src.Lookup(r)
	if err == nil || !errors.Is(err, layout.ErrUnknownGlyph) {
		return c, err
	}
	for _, alt := range alternatives(r) {
		if c, altErr := f.src.Lookup(alt); altErr == nil {
			c.Key = r
			return c, nil
		}
	}
	return layout.Character{}, err
}

// alternatives lists substitutes for r in the order they are tried.
func alternatives(r rune) []rune {
	var out []rune
	add := func(a rune) {
		if a == r || a == utf8.RuneError {
			return
		}
		for _, o := range out {
			if o == a {
				return
			}
		}
		out = append(out, a)
	}

	base := r
	if s := StripMarks(string(r)); utf8.RuneCountInString(s) == 1 {
		base, _ = utf8.DecodeRuneInString(s)
		add(base)
	}
	for _, b := range []rune{r, base} {
		add(unicode.ToUpper(b))
		add(unicode.ToLower(b))
	}
	return out
}

// StripMarks removes combining marks after canonical decomposition.
func StripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
