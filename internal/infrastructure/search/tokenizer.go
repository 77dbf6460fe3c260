package search

import (
	"strings"
	"unicode"
)

// Tokenize splits text into lowercase search tokens. SKUs like
// "TEE-RED-M" break apart on punctuation so each segment matches.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// TokenizeAll tokenizes multiple fields into one deduplicated token set
func TokenizeAll(texts []string) []string {
	return Tokenize(strings.Join(texts, " "))
}
