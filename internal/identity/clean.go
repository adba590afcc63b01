package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// mangledGlyphs are characters produced by mis-encoded spreadsheet exports.
const mangledGlyphs = "ØßÜÊ¡²"

// isCombiningMark reports whether r is in the Combining Diacritical Marks
// block (U+0300 to U+036F).
func isCombiningMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
}

func isMangledGlyph(r rune) bool {
	return strings.ContainsRune(mangledGlyphs, r)
}

// foldTransformer strips mangled glyphs, then decomposes and drops
// combining marks. The output is left decomposed.
func foldTransformer() transform.Transformer {
	return transform.Chain(
		runes.Remove(runes.Predicate(isMangledGlyph)),
		norm.NFD,
		runes.Remove(runes.Predicate(isCombiningMark)),
	)
}

// Clean removes mangled glyphs and diacritics from text and trims the
// surrounding whitespace.
//
//	Clean("  Adjoua Kouassi-Bédié ") // "Adjoua Kouassi-Bedie"
func Clean(text string) string {
	if text == "" {
		return ""
	}
	folded, _, err := transform.String(foldTransformer(), text)
	if err != nil {
		// Only reachable on invalid transformer state; keep the input usable.
		folded = text
	}
	return strings.TrimSpace(folded)
}

// addressPart reduces a name token to the lowercase ASCII letters allowed
// in the local part of an address.
func addressPart(token string) string {
	folded := Clean(strings.ToLower(token))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// nameTokens splits cleaned text on whitespace and keeps tokens longer
// than one character.
func nameTokens(cleaned string) []string {
	fields := strings.FieldsFunc(cleaned, unicode.IsSpace)
	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
