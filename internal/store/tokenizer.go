package store

import (
	"regexp"
	"strings"
)

// nonWordRegex matches everything that is neither a word character nor
// whitespace. Those characters are stripped before splitting.
var nonWordRegex = regexp.MustCompile(`[^\w\s]+`)

// Tokenize normalizes text into lowercase index terms. Punctuation is
// stripped, the remainder is split on whitespace, and terms of length <= 1
// are dropped. Indexing and querying share this function so term identity
// stays consistent.
func Tokenize(text string) []string {
	cleaned := nonWordRegex.ReplaceAllString(strings.ToLower(text), "")
	words := strings.Fields(cleaned)

	terms := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) > 1 {
			terms = append(terms, w)
		}
	}
	return terms
}
