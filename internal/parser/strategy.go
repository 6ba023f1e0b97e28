package parser

import (
	"strings"

	"itemize/internal/domain"
	"itemize/internal/fuzzy"
	"itemize/internal/ruleset"
)

// Document is the per-run parsing context: corrected lines, their classifier
// verdicts, and any vendor profile corroborated by the whole document.
type Document struct {
	Lines   []string
	Classes []domain.LineClass
	Vendor  *ruleset.VendorProfile
}

// Strategy is one layout-parsing strategy. Parse inspects lines starting at
// index i and, on success, returns the candidates produced and how many
// lines it consumed (at least one). Returning ok=false is ordinary control
// flow, not an error.
type Strategy interface {
	Name() string
	Parse(doc *Document, i int) (candidates []domain.LineItemCandidate, consumed int, ok bool)
}

// Engine runs the classifier and the strategy chain over a document.
// Strategies are tried in fixed priority order; the first success for a
// line wins and later strategies never see that line again.
type Engine struct {
	rules      *ruleset.RuleSet
	classifier *Classifier
	strategies []Strategy
}

// NewEngine wires the five strategies in their priority order.
func NewEngine(rs *ruleset.RuleSet) *Engine {
	structured := &StructuredStrategy{scoring: rs.Scoring}
	matcher := fuzzy.NewMatcher(rs.Scoring.FuzzyWordThreshold, rs.Scoring.FuzzyCoverageRatio)
	return &Engine{
		rules:      rs,
		classifier: NewClassifier(),
		strategies: []Strategy{
			&MergedLineStrategy{scoring: rs.Scoring},
			structured,
			&TwoLineStrategy{scoring: rs.Scoring},
			&VendorStrategy{scoring: rs.Scoring},
			&FuzzyFallbackStrategy{
				vocabulary: rs.Vocabulary,
				matcher:    matcher,
				scoring:    rs.Scoring,
			},
		},
	}
}

// Parse classifies every line, then walks the document applying the strategy
// chain to each kept line. Candidates come back in document order.
func (e *Engine) Parse(lines []string) []domain.LineItemCandidate {
	doc := e.newDocument(lines)
	var out []domain.LineItemCandidate

	i := 0
	for i < len(doc.Lines) {
		if doc.Classes[i] == domain.LineSkip {
			i++
			continue
		}
		advanced := false
		for _, s := range e.strategies {
			cands, consumed, ok := s.Parse(doc, i)
			if !ok {
				continue
			}
			out = append(out, cands...)
			if consumed < 1 {
				consumed = 1
			}
			i += consumed
			advanced = true
			break
		}
		if !advanced {
			i++
		}
	}
	return out
}

func (e *Engine) newDocument(lines []string) *Document {
	doc := &Document{
		Lines:   lines,
		Classes: make([]domain.LineClass, len(lines)),
	}
	for i, line := range lines {
		doc.Classes[i] = e.classifier.Classify(line)
	}
	doc.Vendor = e.detectVendor(lines)
	return doc
}

// detectVendor looks for corroborating keyword evidence anywhere in the
// document and returns the matching profile, preferring the one with the
// most distinct keyword hits.
func (e *Engine) detectVendor(lines []string) *ruleset.VendorProfile {
	upper := strings.ToUpper(strings.Join(lines, "\n"))
	var best *ruleset.VendorProfile
	bestHits := 0
	for i := range e.rules.Vendors {
		v := &e.rules.Vendors[i]
		hits := 0
		for _, kw := range v.Keywords {
			if strings.Contains(upper, strings.ToUpper(kw)) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = v, hits
		}
	}
	return best
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
