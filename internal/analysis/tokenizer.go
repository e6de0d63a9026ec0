package analysis

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[A-Za-z']{2,}`)

// Tokenizer turns raw text into index-worthy terms.
type Tokenizer struct {
	stopwords StopwordSet
}

// NewTokenizer returns a tokenizer filtering the given stopwords. A nil set
// selects the built-in English list.
func NewTokenizer(stopwords StopwordSet) *Tokenizer {
	if stopwords == nil {
		stopwords = DefaultStopwords()
	}
	return &Tokenizer{stopwords: stopwords}
}

// Stopwords returns the set the tokenizer filters.
func (t *Tokenizer) Stopwords() StopwordSet {
	return t.stopwords
}

// Tokenize extracts runs of ASCII letters and apostrophes, lowercases them,
// trims edge apostrophes and drops stopwords. Input order is preserved.
func (t *Tokenizer) Tokenize(text string) []string {
	matches := wordPattern.FindAllString(text, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		token := strings.Trim(strings.ToLower(m), "'")
		if token == "" || t.stopwords.Contains(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

var defaultTokenizer = NewTokenizer(nil)

// Tokenize splits text with the default stopword list.
func Tokenize(text string) []string {
	return defaultTokenizer.Tokenize(text)
}
