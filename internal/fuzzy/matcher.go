// Package fuzzy provides approximate string matching against the known-term
// vocabulary. The layout parsers consult it as a last resort, after every
// structured pattern has failed on a line.
package fuzzy

import (
	"math"
	"strings"

	"github.com/agext/levenshtein"
)

// Similarity returns normalized edit-distance similarity in [0,1]:
// (maxLen - levenshtein(a,b)) / maxLen. Equal strings (including two empty
// strings) score 1.0. Symmetric in its arguments.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.Distance(a, b, levenshtein.NewParams())
	return float64(maxLen-dist) / float64(maxLen)
}

// Matcher evaluates token-coverage fuzzy matches with configurable
// thresholds.
type Matcher struct {
	// WordThreshold is the per-word similarity floor for a phrase word to
	// count as covered.
	WordThreshold float64
	// CoverageRatio is the fraction of phrase words that must be covered
	// (rounded up) for the match to succeed.
	CoverageRatio float64
}

// NewMatcher returns a Matcher with the given thresholds.
func NewMatcher(wordThreshold, coverageRatio float64) *Matcher {
	return &Matcher{WordThreshold: wordThreshold, CoverageRatio: coverageRatio}
}

// IsMatch reports whether line approximately contains knownPhrase. Both are
// tokenized by whitespace; a phrase word is covered when any line word
// reaches the per-word similarity floor, and the match succeeds when the
// covered count reaches ceil(CoverageRatio * phraseWordCount).
func (m *Matcher) IsMatch(line, knownPhrase string) bool {
	phraseWords := strings.Fields(knownPhrase)
	if len(phraseWords) == 0 {
		return false
	}
	lineWords := strings.Fields(line)
	if len(lineWords) == 0 {
		return false
	}

	covered := 0
	for _, pw := range phraseWords {
		for _, lw := range lineWords {
			if Similarity(lw, pw) >= m.WordThreshold {
				covered++
				break
			}
		}
	}
	needed := int(math.Ceil(m.CoverageRatio * float64(len(phraseWords))))
	if needed < 1 {
		needed = 1
	}
	return covered >= needed
}

// Signals are the boolean evidence terms feeding a fuzzy candidate's
// confidence. Each contributes its full weight or nothing.
type Signals struct {
	QuantityPlausible bool
	PricePlausible    bool
	HasContextKeyword bool
	MatchesShape      bool
}

// Weights are the confidence contribution of each evidence term.
type Weights struct {
	Similarity float64
	Quantity   float64
	Price      float64
	Keyword    float64
	Shape      float64
}

// Confidence combines the line/term similarity with the boolean signals,
// clamped to [0,1].
func Confidence(similarity float64, s Signals, w Weights) float64 {
	conf := w.Similarity * similarity
	if s.QuantityPlausible {
		conf += w.Quantity
	}
	if s.PricePlausible {
		conf += w.Price
	}
	if s.HasContextKeyword {
		conf += w.Keyword
	}
	if s.MatchesShape {
		conf += w.Shape
	}
	if conf < 0 {
		return 0
	}
	if conf > 1 {
		return 1
	}
	return conf
}
