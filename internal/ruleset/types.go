package ruleset

import (
	"fmt"
	"regexp"

	"itemize/internal/domain"
)

// CharacterRule maps a corrupted glyph or short token to its canonical
// character. The rule only applies inside one of its declared contexts.
type CharacterRule struct {
	From     string               `json:"from"`
	To       string               `json:"to"`
	Contexts []domain.RuleContext `json:"contexts"`
}

// HasContext reports whether the rule is allowed in the given context.
func (r *CharacterRule) HasContext(ctx domain.RuleContext) bool {
	for _, c := range r.Contexts {
		if c == ctx {
			return true
		}
	}
	return false
}

// WordRule replaces a whole corrupted phrase with its canonical form.
// Applied only when Confidence is at least the configured rule gate.
type WordRule struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Confidence float64 `json:"confidence"`
}

// ContextRule fixes a malformed numeral that trails a recognized label.
type ContextRule struct {
	Label      string  `json:"label"`
	ValueShape string  `json:"value_shape"`
	Correction string  `json:"correction"`
	Confidence float64 `json:"confidence"`

	labelRe *regexp.Regexp
	valueRe *regexp.Regexp
}

// MatchLabel reports whether the line carries this rule's label.
func (r *ContextRule) MatchLabel(line string) bool { return r.labelRe.MatchString(line) }

// MatchValue reports whether a trailing token has the malformed shape.
func (r *ContextRule) MatchValue(token string) bool { return r.valueRe.MatchString(token) }

// VendorProfile describes one retailer's layout quirks: keywords that
// identify its receipts, a vendor-scoped character map, and the looser
// columnar line patterns it uses.
type VendorProfile struct {
	Name         string            `json:"name"`
	Keywords     []string          `json:"keywords"`
	CharacterMap map[string]string `json:"character_map"`
	LinePatterns []string          `json:"line_patterns"`

	lineRes []*regexp.Regexp
}

// LineRegexps returns the compiled layout patterns for this vendor.
func (p *VendorProfile) LineRegexps() []*regexp.Regexp { return p.lineRes }

// VocabularyTerm is a known product name plus accepted spelling variations.
type VocabularyTerm struct {
	Canonical string   `json:"canonical"`
	Variants  []string `json:"variants,omitempty"`
}

// Phrases returns the canonical name followed by all variants.
func (t *VocabularyTerm) Phrases() []string {
	out := make([]string, 0, 1+len(t.Variants))
	out = append(out, t.Canonical)
	out = append(out, t.Variants...)
	return out
}

// Scoring holds the heuristic confidence constants. They were tuned against
// a small set of observed receipts and are kept configurable rather than
// assumed to generalize.
type Scoring struct {
	FuzzySimilarityWeight float64 `json:"fuzzy_similarity_weight"`
	FuzzyQuantityWeight   float64 `json:"fuzzy_quantity_weight"`
	FuzzyPriceWeight      float64 `json:"fuzzy_price_weight"`
	FuzzyKeywordWeight    float64 `json:"fuzzy_keyword_weight"`
	FuzzyShapeWeight      float64 `json:"fuzzy_shape_weight"`

	// FuzzyWordThreshold is the per-word similarity floor, and
	// FuzzyCoverageRatio the fraction of phrase words that must be covered.
	FuzzyWordThreshold float64 `json:"fuzzy_word_threshold"`
	FuzzyCoverageRatio float64 `json:"fuzzy_coverage_ratio"`

	StructuredBase    float64 `json:"structured_base"`
	TwoLineConfidence float64 `json:"two_line_confidence"`
	MergedBase        float64 `json:"merged_base"`
	VendorBase        float64 `json:"vendor_base"`
	FuzzyFloor        float64 `json:"fuzzy_floor"`

	// MinRuleConfidence gates word-level and context-aware corrections.
	MinRuleConfidence float64 `json:"min_rule_confidence"`

	// OverallEngineWeight is the engine-confidence share of the overall
	// score; the mean candidate confidence takes the remainder.
	OverallEngineWeight float64 `json:"overall_engine_weight"`
}

// DefaultScoring returns the tuned constants.
func DefaultScoring() Scoring {
	return Scoring{
		FuzzySimilarityWeight: 0.4,
		FuzzyQuantityWeight:   0.2,
		FuzzyPriceWeight:      0.2,
		FuzzyKeywordWeight:    0.1,
		FuzzyShapeWeight:      0.1,
		FuzzyWordThreshold:    0.6,
		FuzzyCoverageRatio:    0.5,
		StructuredBase:        0.9,
		TwoLineConfidence:     0.95,
		MergedBase:            0.85,
		VendorBase:            0.8,
		FuzzyFloor:            0.5,
		MinRuleConfidence:     0.9,
		OverallEngineWeight:   0.5,
	}
}

// RuleSet is the immutable correction and parsing rule data. Build it once
// at process start; concurrent readers need no locking.
type RuleSet struct {
	Version    string           `json:"version"`
	Characters []CharacterRule  `json:"characters"`
	Words      []WordRule       `json:"words"`
	Contexts   []ContextRule    `json:"context_rules"`
	Vendors    []VendorProfile  `json:"vendors"`
	Vocabulary []VocabularyTerm `json:"vocabulary"`
	// Noise is the fixed denylist of short meaningless fragments stripped
	// during cleanup.
	Noise   []string `json:"noise"`
	Scoring Scoring  `json:"scoring"`
}

// ConfigurationError reports malformed rule data at construction time.
// A RuleSet that fails to build must never be used to process documents.
type ConfigurationError struct {
	Source string // file path or "builtin"
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ruleset %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("ruleset %s: %s", e.Source, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func configErr(source, reason string, err error) *ConfigurationError {
	return &ConfigurationError{Source: source, Reason: reason, Err: err}
}
