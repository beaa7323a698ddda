// Package search implements relevance-ranked semantic search over the
// unpruned snapshot tree.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// noiseWords are dropped from name queries.
var noiseWords = map[string]bool{
	"the": true, "a": true, "an": true, "this": true, "that": true,
	"for": true, "in": true, "on": true, "of": true, "with": true,
	"to": true, "and": true, "or": true, "is": true, "it": true,
	"its": true, "my": true, "your": true,
}

// Tokenize lowercases, strips diacritics via Unicode decomposition, and
// splits on non-alphanumeric runes.
func Tokenize(s string) []string {
	folded := fold(s)
	tokens := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// fold lowercases and removes combining marks after NFD decomposition.
func fold(s string) string {
	decomposed := norm.NFD.String(strings.ToLower(s))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// dropNoise filters noise words out of a token list.
func dropNoise(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if !noiseWords[t] {
			out = append(out, t)
		}
	}
	return out
}
