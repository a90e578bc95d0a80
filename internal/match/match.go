// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match implements strict-mode token matching: every significant
// query token must appear in an item's combined text.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/meliscan/pkg/types"
)

// stopWords are common Portuguese and English function words that carry no
// matching signal.
var stopWords = map[string]bool{
	"de": true, "da": true, "do": true, "das": true, "dos": true,
	"em": true, "no": true, "na": true, "nos": true, "nas": true,
	"um": true, "uma": true, "com": true, "sem": true, "por": true,
	"para": true, "the": true, "and": true, "for": true, "with": true,
	"of": true, "to": true, "in": true, "on": true,
}

// folder strips combining marks after NFD decomposition, turning "memória"
// into "memoria".
var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalize lowercases, strips diacritics and punctuation, and collapses
// whitespace.
func normalize(s string) string {
	folded, _, err := transform.String(folder, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}
	var b strings.Builder
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize splits a query into significant tokens: normalized words longer
// than one character that are not stop-words.
func Tokenize(query string) []string {
	var tokens []string
	for _, w := range strings.Fields(normalize(query)) {
		if len(w) <= 1 || stopWords[w] {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// Matches reports whether every token occurs as a substring of the item's
// combined corpus: title, description, and enrichment attribute values. An
// empty token list matches everything.
func Matches(item types.Item, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	corpus := normalize(corpusText(item))
	for _, tok := range tokens {
		if !strings.Contains(corpus, tok) {
			return false
		}
	}
	return true
}

func corpusText(item types.Item) string {
	var parts []string
	parts = append(parts, item.Title)
	if item.Description != nil {
		parts = append(parts, *item.Description)
	}
	for _, group := range item.Attributes {
		parts = append(parts, group.Values...)
	}
	return strings.Join(parts, " ")
}

// Filter returns the items matching every token, preserving order. It
// tokenizes the query once per call.
func Filter(items []types.Item, query string) []types.Item {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return items
	}
	kept := items[:0:0]
	for _, item := range items {
		if Matches(item, tokens) {
			kept = append(kept, item)
		}
	}
	return kept
}
