// Package textutil provides the text normalization shared by the
// classifier, the similarity index and the analytics word counts.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes and drops combining marks, so "clasificación"
// becomes "clasificacion".
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var wordPattern = regexp.MustCompile(`\w+`)

// Normalize lowercases the text and removes diacritics.
func Normalize(text string) string {
	text = strings.ToLower(text)
	out, _, err := transform.String(stripAccents, text)
	if err != nil {
		return text
	}
	return out
}

// Tokenize splits normalized text into word tokens.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// ContentTokens normalizes, tokenizes and drops stopwords. Used by the
// similarity vector space and the analytics word frequencies.
func ContentTokens(text string) []string {
	tokens := Tokenize(Normalize(text))
	out := tokens[:0]
	for _, tok := range tokens {
		if !IsStopword(tok) {
			out = append(out, tok)
		}
	}
	return out
}
