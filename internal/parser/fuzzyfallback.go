package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"itemize/internal/domain"
	"itemize/internal/fuzzy"
	"itemize/internal/ruleset"
)

var (
	quantityMarkerRe = regexp.MustCompile(`(?i)(^|\s)\d{1,3}\s*x(\s|@|\d|$)|@`)
	endsWithMoneyRe  = regexp.MustCompile(`\d[\d.,]{2,}\s*$`)
)

// FuzzyFallbackStrategy is the last resort: when every structured pattern
// has failed on a kept line, each vocabulary term is tested with the
// token-coverage match and a permissive numeric scan recovers the trailing
// quantity and price.
type FuzzyFallbackStrategy struct {
	vocabulary []ruleset.VocabularyTerm
	matcher    *fuzzy.Matcher
	scoring    ruleset.Scoring
}

func (s *FuzzyFallbackStrategy) Name() string { return "fuzzy_fallback" }

func (s *FuzzyFallbackStrategy) Parse(doc *Document, i int) ([]domain.LineItemCandidate, int, bool) {
	line := doc.Lines[i]

	bestSim := 0.0
	var bestTerm *ruleset.VocabularyTerm
	for ti := range s.vocabulary {
		term := &s.vocabulary[ti]
		for _, phrase := range term.Phrases() {
			if !s.matcher.IsMatch(line, phrase) {
				continue
			}
			if sim := fuzzy.Similarity(line, phrase); sim > bestSim {
				bestSim = sim
				bestTerm = term
			}
		}
	}
	if bestTerm == nil {
		return nil, 0, false
	}

	qty, price := scanNumerics(line)
	signals := fuzzy.Signals{
		QuantityPlausible: QuantityPlausible(qty),
		PricePlausible:    PricePlausible(price),
		HasContextKeyword: quantityMarkerRe.MatchString(line),
		MatchesShape:      endsWithMoneyRe.MatchString(line),
	}
	conf := fuzzy.Confidence(bestSim, signals, fuzzy.Weights{
		Similarity: s.scoring.FuzzySimilarityWeight,
		Quantity:   s.scoring.FuzzyQuantityWeight,
		Price:      s.scoring.FuzzyPriceWeight,
		Keyword:    s.scoring.FuzzyKeywordWeight,
		Shape:      s.scoring.FuzzyShapeWeight,
	})
	if conf < s.scoring.FuzzyFloor {
		conf = s.scoring.FuzzyFloor
	}

	cand := domain.LineItemCandidate{
		Name:       bestTerm.Canonical,
		Quantity:   qty,
		Price:      price,
		Confidence: clampConfidence(conf),
		Method:     domain.MethodFuzzyFallback,
		SourceSpan: line,
	}
	return []domain.LineItemCandidate{cand}, 1, true
}

// scanNumerics pulls a plausible quantity and the right-most amount out of
// an otherwise unparsable line. Quantity defaults to 1.
func scanNumerics(line string) (int, decimal.Decimal) {
	tokens := strings.Fields(line)

	qty := 1
	for j, tok := range tokens {
		n, ok := ParseQuantity(tok)
		if !ok || !QuantityPlausible(n) {
			continue
		}
		// prefer an integer adjacent to a quantity marker
		if j+1 < len(tokens) {
			next := strings.ToLower(tokens[j+1])
			if next == "@" || strings.HasPrefix(next, "x") {
				qty = n
				break
			}
		}
		if j > 0 && strings.ToLower(tokens[j-1]) == "x" {
			qty = n
			break
		}
	}

	price := decimal.Zero
	for j := len(tokens) - 1; j >= 0; j-- {
		tok := strings.Trim(tokens[j], ".,")
		if len(tok) < 3 {
			continue
		}
		if d, ok := ParseAmount(tok); ok && PricePlausible(d) {
			price = d
			break
		}
	}
	return qty, price
}
