package search

import "strings"

// tokenize lower-cases text and splits it on whitespace. Punctuation is kept
// so that a token like "1984," only matches titles containing it verbatim.
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// matchingToken returns the first token contained in title, which must
// already be lower-cased.
func matchingToken(title string, tokens []string) (string, bool) {
	for _, token := range tokens {
		if strings.Contains(title, token) {
			return token, true
		}
	}
	return "", false
}
