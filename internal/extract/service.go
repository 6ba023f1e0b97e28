// Package extract drives the full recovery pipeline: one correction pass,
// line classification, the strategy chain, and result assembly. Extract is a
// pure function of (rawText, engineConfidence, RuleSet) and is safe for
// concurrent use.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"itemize/internal/correct"
	"itemize/internal/domain"
	"itemize/internal/parser"
	"itemize/internal/ruleset"
)

var (
	grandTotalRe = regexp.MustCompile(`(?i)^\s*grand\s*total\b`)
	totalRe      = regexp.MustCompile(`(?i)^\s*total\b`)
	amountRe     = regexp.MustCompile(`\d[\d.,]*`)
)

// Service is the extraction orchestrator. Build one per RuleSet at startup
// and share it; it holds no mutable state.
type Service struct {
	rules     *ruleset.RuleSet
	corrector *correct.Corrector
	engine    *parser.Engine
	now       func() time.Time
}

// NewService wires the corrector and parsing engine over one RuleSet.
func NewService(rs *ruleset.RuleSet) *Service {
	return &Service{
		rules:     rs,
		corrector: correct.New(rs),
		engine:    parser.NewEngine(rs),
		now:       time.Now,
	}
}

// Extract recovers line items from raw recognition text. It never fails:
// unparsable input yields a result with zero candidates, which callers
// should report as "no items recognized" rather than an error.
func (s *Service) Extract(rawText string, engineConfidence float64) *domain.ExtractionResult {
	engineConfidence = clamp01(engineConfidence)
	result := &domain.ExtractionResult{
		ID:               uuid.New(),
		RawText:          rawText,
		EngineConfidence: engineConfidence,
		CreatedAt:        s.now().UTC(),
	}
	// Empty input is a valid no-items result with zero confidence, not an
	// error.
	if strings.TrimSpace(rawText) == "" {
		return result
	}

	corrected := s.corrector.Correct(rawText)
	result.CorrectedText = corrected
	lines := strings.Split(corrected, "\n")

	result.Candidates = s.engine.Parse(lines)
	result.TotalAmount = totalAmount(lines, result.Candidates)
	result.OverallConfidence = overallConfidence(
		engineConfidence, result.Candidates, s.rules.Scoring.OverallEngineWeight)
	return result
}

// totalAmount prefers an explicit grand-total line; otherwise it sums the
// candidate prices. Nil when neither source yields a value.
func totalAmount(lines []string, candidates []domain.LineItemCandidate) *decimal.Decimal {
	if d, ok := labeledTotal(lines, grandTotalRe); ok {
		return &d
	}
	if d, ok := labeledTotal(lines, totalRe); ok {
		return &d
	}
	if len(candidates) == 0 {
		return nil
	}
	sum := decimal.Zero
	for i := range candidates {
		sum = sum.Add(candidates[i].Price)
	}
	return &sum
}

func labeledTotal(lines []string, label *regexp.Regexp) (decimal.Decimal, bool) {
	for _, line := range lines {
		if !label.MatchString(line) {
			continue
		}
		amounts := amountRe.FindAllString(line, -1)
		if len(amounts) == 0 {
			continue
		}
		if d, ok := parser.ParseAmount(amounts[len(amounts)-1]); ok {
			return d, true
		}
	}
	return decimal.Zero, false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// overallConfidence blends the recognition engine's own score with the mean
// candidate confidence, falling back to the engine score alone when no
// candidates were recovered. engineWeight is the engine's share of the blend.
func overallConfidence(engine float64, candidates []domain.LineItemCandidate, engineWeight float64) float64 {
	if len(candidates) == 0 {
		return engine
	}
	sum := 0.0
	for i := range candidates {
		sum += candidates[i].Confidence
	}
	mean := sum / float64(len(candidates))
	return clamp01(engineWeight*engine + (1-engineWeight)*mean)
}
