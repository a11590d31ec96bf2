package ingest

import (
	"strings"
	"unicode"

	"github.com/loreweave/loreweave/pkg/loreweave/lexicon"
	"github.com/loreweave/loreweave/pkg/loreweave/stoplist"
)

// Tokenizer handles text tokenization and normalization
type Tokenizer struct {
	stops   *stoplist.Manager
	lexicon *lexicon.Lexicon // Optional: for synonym normalization
}

// NewTokenizer creates a new tokenizer with the given stopword list
func NewTokenizer(stopwords []string) *Tokenizer {
	lowered := make([]string, len(stopwords))
	for i, w := range stopwords {
		lowered[i] = strings.ToLower(w)
	}
	return &Tokenizer{stops: stoplist.NewManager(lowered)}
}

// Stoplist exposes the underlying stopword manager, so callers can
// inspect entries and their recorded reasons.
func (t *Tokenizer) Stoplist() *stoplist.Manager {
	return t.stops
}

// SetLexicon assigns a lexicon for synonym normalization.
// When set, tokens will be normalized to their canonical forms.
// Example: "hamlet" → "village", "catacombs" → "crypt"
func (t *Tokenizer) SetLexicon(lex *lexicon.Lexicon) {
	t.lexicon = lex
}

// Tokenize splits text into normalized tokens, removing stopwords.
// If a lexicon is set, tokens are normalized to their canonical forms.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			if current.Len() > 0 {
				word := t.processToken(current.String())
				if word != "" {
					tokens = append(tokens, word)
				}
				current.Reset()
			}
		}
	}

	// Don't forget the last token
	if current.Len() > 0 {
		word := t.processToken(current.String())
		if word != "" {
			tokens = append(tokens, word)
		}
	}

	return tokens
}

// processToken applies cleaning, lexicon normalization, and stopword filtering.
func (t *Tokenizer) processToken(token string) string {
	word := t.cleanToken(token)
	if word == "" || len(word) <= 1 {
		return ""
	}

	// Pure-numeric tokens carry no semantic value. Mixed tokens like
	// "2d6" or "hex-0405" are kept: dice notation and hex coordinates
	// are strong classification signals.
	if isNumericOnly(word) {
		return ""
	}

	if t.lexicon != nil {
		word = t.lexicon.Normalize(word)
	}

	if t.isStopword(word) {
		return ""
	}

	return word
}

// cleanToken strips leading/trailing hyphens and normalizes consecutive hyphens
func (t *Tokenizer) cleanToken(token string) string {
	token = strings.Trim(token, "-")

	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}

	return token
}

// isNumericOnly returns true if the token contains only digits and hyphens.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

func (t *Tokenizer) isStopword(word string) bool {
	return t.stops.IsStop(word)
}

// AddStopword adds a word to the stopword list
func (t *Tokenizer) AddStopword(word string) {
	t.stops.Add(strings.ToLower(word), stoplist.Reason{Manual: true})
}

// RemoveStopword removes a word from the stopword list
func (t *Tokenizer) RemoveStopword(word string) {
	t.stops.Remove(strings.ToLower(word))
}
