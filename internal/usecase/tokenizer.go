package usecase

import (
	"regexp"
	"strings"
)

// nonLetterRegex replaces punctuation and digits with spaces before splitting
var nonLetterRegex = regexp.MustCompile(`[^a-z\s]`)

// TokenizerConfig holds the lookup tables for tokenization and expansion.
// Zero-value fields fall back to the production defaults.
type TokenizerConfig struct {
	StopWords []string
	Synonyms  map[string][]string
}

// Tokenizer normalizes free text (ingredient lists or image filenames) into
// canonical lowercase, singularized, stop-word-filtered tokens, and expands
// token sets with known ingredient synonyms.
type Tokenizer struct {
	stopWords map[string]bool
	synonyms  map[string][]string
}

// NewTokenizer creates a tokenizer with the given tables
func NewTokenizer(config TokenizerConfig) *Tokenizer {
	stopWords := config.StopWords
	if stopWords == nil {
		stopWords = defaultStopWords
	}

	synonyms := config.Synonyms
	if synonyms == nil {
		synonyms = defaultIngredientSynonyms
	}

	stopSet := make(map[string]bool, len(stopWords))
	for _, w := range stopWords {
		stopSet[w] = true
	}

	return &Tokenizer{
		stopWords: stopSet,
		synonyms:  synonyms,
	}
}

// Tokenize normalizes text into tokens. Order is preserved and duplicates are
// allowed; every token is lowercase, longer than 2 characters, singularized,
// and not a stop word. Pure and deterministic.
func (t *Tokenizer) Tokenize(text string) []string {
	cleaned := nonLetterRegex.ReplaceAllString(strings.ToLower(text), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 2 {
			continue
		}
		word = singularize(word)
		if t.stopWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// singularize applies basic suffix rules. It is a heuristic, not a stemmer:
// "chilies" becomes "chily" and that exact behavior is load-bearing for
// compatibility with the existing image index.
func singularize(word string) string {
	switch {
	case strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "es"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss"):
		return word[:len(word)-1]
	default:
		return word
	}
}

// Expand returns the token set augmented with ingredient synonyms. For every
// token matching a synonym group (as the canonical key or any variant), the
// key and all variants (internal spaces stripped) are added. Expansion is not
// transitive across groups. The result is a true set with no guaranteed order.
func (t *Tokenizer) Expand(tokens []string) map[string]bool {
	expanded := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		expanded[token] = true
	}

	for _, token := range tokens {
		for key, synonyms := range t.synonyms {
			if token != key && !containsString(synonyms, token) {
				continue
			}
			expanded[key] = true
			for _, syn := range synonyms {
				expanded[strings.ToLower(strings.ReplaceAll(syn, " ", ""))] = true
			}
		}
	}

	return expanded
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
