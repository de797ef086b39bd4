package text

import (
	"errors"
	"math"
	"strings"
	"unicode"

	"custintel/internal/estimator"
)

// Valence adjustments of the VADER rule set.
const (
	boosterIncr   = 0.293
	boosterDecr   = -0.293
	capsIncr      = 0.733
	negationScale = -0.74
	normAlpha     = 15
	exclaimIncr   = 0.292
	questionIncr  = 0.18
	questionMax   = 0.96
)

var defaultBoosters = map[string]float64{
	"absolutely": boosterIncr, "amazingly": boosterIncr, "awfully": boosterIncr,
	"completely": boosterIncr, "considerably": boosterIncr, "decidedly": boosterIncr,
	"deeply": boosterIncr, "enormously": boosterIncr, "entirely": boosterIncr,
	"especially": boosterIncr, "exceptionally": boosterIncr, "extremely": boosterIncr,
	"fabulously": boosterIncr, "greatly": boosterIncr, "highly": boosterIncr,
	"hugely": boosterIncr, "incredibly": boosterIncr, "intensely": boosterIncr,
	"majorly": boosterIncr, "more": boosterIncr, "most": boosterIncr,
	"particularly": boosterIncr, "purely": boosterIncr, "quite": boosterIncr,
	"really": boosterIncr, "remarkably": boosterIncr, "so": boosterIncr,
	"substantially": boosterIncr, "thoroughly": boosterIncr, "totally": boosterIncr,
	"tremendously": boosterIncr, "uber": boosterIncr, "unbelievably": boosterIncr,
	"unusually": boosterIncr, "utterly": boosterIncr, "very": boosterIncr,
	"almost": boosterDecr, "barely": boosterDecr, "hardly": boosterDecr,
	"less": boosterDecr, "little": boosterDecr, "marginally": boosterDecr,
	"occasionally": boosterDecr, "partly": boosterDecr, "scarcely": boosterDecr,
	"slightly": boosterDecr, "somewhat": boosterDecr,
}

var defaultNegations = []string{
	"aint", "arent", "cannot", "cant", "couldnt", "darent", "didnt", "doesnt",
	"dont", "hadnt", "hasnt", "havent", "isnt", "mightnt", "mustnt", "neither",
	"never", "none", "nope", "nor", "not", "nothing", "nowhere", "shant",
	"shouldnt", "wasnt", "werent", "without", "wont", "wouldnt", "rarely",
	"seldom", "despite",
}

// PolarityScorer scores raw text without vectorising it.
type PolarityScorer interface {
	PolarityScores(text string) Scores
}

// Scores are the polarity scores of one text.
type Scores struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// LexiconAnalyzer scores text with a valence lexicon and the VADER heuristics
// for boosters, negation, capitalisation, "but" and punctuation.
type LexiconAnalyzer struct {
	Lexicon   map[string]float64 `json:"lexicon"`
	Boosters  map[string]float64 `json:"boosters,omitempty"`
	Negations []string           `json:"negations,omitempty"`

	negations map[string]struct{}
}

func (*LexiconAnalyzer) Kind() estimator.Kind { return KindVaderLexicon }

// Validate requires a lexicon and fills in the default booster and negation lists.
func (a *LexiconAnalyzer) Validate() error {
	if len(a.Lexicon) == 0 {
		return errors.New("lexicon is empty")
	}
	lex := make(map[string]float64, len(a.Lexicon))
	for k, v := range a.Lexicon {
		lex[strings.ToLower(k)] = v
	}
	a.Lexicon = lex
	if a.Boosters == nil {
		a.Boosters = defaultBoosters
	}
	if a.Negations == nil {
		a.Negations = defaultNegations
	}
	a.negations = make(map[string]struct{}, len(a.Negations))
	for _, n := range a.Negations {
		a.negations[strings.ToLower(n)] = struct{}{}
	}
	return nil
}

// PolarityScores scores text. The compound score is normalised to [-1, 1];
// neg, neu and pos are proportions that sum to about one.
func (a *LexiconAnalyzer) PolarityScores(text string) Scores {
	words := splitWords(text)
	capDiff := mixedCaps(words)

	sentiments := make([]float64, len(words))
	for i, w := range words {
		lw := strings.ToLower(w)
		if _, boost := a.Boosters[lw]; boost {
			continue
		}
		if lw == "kind" && i+1 < len(words) && strings.ToLower(words[i+1]) == "of" {
			continue
		}
		valence, ok := a.Lexicon[lw]
		if !ok {
			continue
		}
		if capDiff && isAllCaps(w) {
			valence += math.Copysign(capsIncr, valence)
		}
		for k := 1; k <= 3 && i-k >= 0; k++ {
			prev := words[i-k]
			lprev := strings.ToLower(prev)
			if _, inLex := a.Lexicon[lprev]; !inLex {
				s := a.boost(prev, valence, capDiff)
				switch k {
				case 2:
					s *= 0.95
				case 3:
					s *= 0.9
				}
				valence += s
				if a.isNegation(lprev) {
					valence *= negationScale
				}
			}
		}
		sentiments[i] = valence
	}
	applyBut(words, sentiments)
	return a.score(sentiments, text)
}

func (a *LexiconAnalyzer) boost(word string, valence float64, capDiff bool) float64 {
	s, ok := a.Boosters[strings.ToLower(word)]
	if !ok {
		return 0
	}
	if valence < 0 {
		s = -s
	}
	if capDiff && isAllCaps(word) {
		s += math.Copysign(capsIncr, valence)
	}
	return s
}

func (a *LexiconAnalyzer) isNegation(lw string) bool {
	if _, ok := a.negations[strings.ReplaceAll(lw, "'", "")]; ok {
		return true
	}
	return strings.HasSuffix(lw, "n't")
}

func (a *LexiconAnalyzer) score(sentiments []float64, text string) Scores {
	if len(sentiments) == 0 {
		return Scores{}
	}
	var sum, pos, neg float64
	var neu int
	for _, s := range sentiments {
		sum += s
		switch {
		case s > 0:
			pos += s + 1
		case s < 0:
			neg += s - 1
		default:
			neu++
		}
	}
	amp := punctuationEmphasis(text)
	switch {
	case sum > 0:
		sum += amp
	case sum < 0:
		sum -= amp
	}
	compound := sum / math.Sqrt(sum*sum+normAlpha)
	compound = math.Max(-1, math.Min(1, compound))

	switch {
	case pos > math.Abs(neg):
		pos += amp
	case pos < math.Abs(neg):
		neg -= amp
	}
	total := pos + math.Abs(neg) + float64(neu)
	if total == 0 {
		return Scores{Compound: round(compound, 4)}
	}
	return Scores{
		Neg:      round(math.Abs(neg/total), 3),
		Neu:      round(math.Abs(float64(neu)/total), 3),
		Pos:      round(math.Abs(pos/total), 3),
		Compound: round(compound, 4),
	}
}

// applyBut damps sentiment before "but" and amplifies it after.
func applyBut(words []string, sentiments []float64) {
	idx := -1
	for i, w := range words {
		if strings.ToLower(w) == "but" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	for i := range sentiments {
		switch {
		case i < idx:
			sentiments[i] *= 0.5
		case i > idx:
			sentiments[i] *= 1.5
		}
	}
}

func punctuationEmphasis(text string) float64 {
	ex := strings.Count(text, "!")
	if ex > 4 {
		ex = 4
	}
	amp := float64(ex) * exclaimIncr
	if q := strings.Count(text, "?"); q > 1 {
		if q <= 3 {
			amp += float64(q) * questionIncr
		} else {
			amp += questionMax
		}
	}
	return amp
}

// splitWords splits on whitespace and strips surrounding punctuation,
// dropping tokens shorter than two runes.
func splitWords(text string) []string {
	var out []string
	for _, f := range strings.Fields(text) {
		w := strings.TrimFunc(f, unicode.IsPunct)
		if len([]rune(w)) < 2 {
			continue
		}
		out = append(out, w)
	}
	return out
}

func isAllCaps(w string) bool {
	hasLetter := false
	for _, r := range w {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// mixedCaps reports whether some but not all words are upper case.
func mixedCaps(words []string) bool {
	caps := 0
	for _, w := range words {
		if isAllCaps(w) {
			caps++
		}
	}
	return caps > 0 && caps < len(words)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
