package text

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// wordPattern keeps runs of two or more word characters, the default token
// pattern of the notebooks' vectorizers.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenizer splits a document into word n-grams.
type Tokenizer struct {
	Lowercase  *bool  `json:"lowercase,omitempty"`
	NGramRange [2]int `json:"ngram_range"`
}

func (t *Tokenizer) validate() error {
	lo, hi := t.ngramRange()
	if lo < 1 || hi < lo {
		return fmt.Errorf("invalid ngram_range [%d, %d]", lo, hi)
	}
	return nil
}

func (t *Tokenizer) ngramRange() (int, int) {
	if t.NGramRange == [2]int{} {
		return 1, 1
	}
	return t.NGramRange[0], t.NGramRange[1]
}

// Tokens returns the n-grams of doc in order of appearance.
func (t *Tokenizer) Tokens(doc string) []string {
	if t.Lowercase == nil || *t.Lowercase {
		doc = strings.ToLower(doc)
	}
	words := wordPattern.FindAllString(doc, -1)
	lo, hi := t.ngramRange()
	if lo == 1 && hi == 1 {
		return words
	}
	var out []string
	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(words); i++ {
			out = append(out, strings.Join(words[i:i+n], " "))
		}
	}
	return out
}

var errEmptyVocabulary = errors.New("vocabulary is empty")

func validateVocabulary(vocab map[string]int) error {
	if len(vocab) == 0 {
		return errEmptyVocabulary
	}
	seen := make(map[int]string, len(vocab))
	for term, idx := range vocab {
		if idx < 0 || idx >= len(vocab) {
			return fmt.Errorf("term %q has index %d outside [0, %d)", term, idx, len(vocab))
		}
		if other, dup := seen[idx]; dup {
			return fmt.Errorf("terms %q and %q share index %d", other, term, idx)
		}
		seen[idx] = term
	}
	return nil
}
