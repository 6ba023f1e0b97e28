package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"itemize/internal/domain"
	"itemize/internal/ruleset"
)

var (
	upperRunRe  = regexp.MustCompile(`^[A-Z][A-Z'&.-]+$`)
	digitTailRe = regexp.MustCompile(`\d[.,]?$`)
	alphaWordRe = regexp.MustCompile(`^[A-Za-z][A-Za-z'&.-]{2,}$`)
)

// MergedLineStrategy recovers from the scanning artifact where several
// product groups land on one physical line. It splits the line at boundary
// heuristics, drops segments without a product-indicator token, and parses
// each surviving segment like a structured line.
type MergedLineStrategy struct {
	scoring ruleset.Scoring
}

func (s *MergedLineStrategy) Name() string { return "merged_line_split" }

func (s *MergedLineStrategy) Parse(doc *Document, i int) ([]domain.LineItemCandidate, int, bool) {
	segments := splitMerged(doc.Lines[i])
	if len(segments) < 2 {
		return nil, 0, false
	}

	var out []domain.LineItemCandidate
	for _, seg := range segments {
		if !hasProductIndicator(seg) {
			continue
		}
		cand, ok := s.parseSegment(seg)
		if ok {
			out = append(out, cand)
		}
	}
	if len(out) == 0 {
		return nil, 0, false
	}
	return out, 1, true
}

// splitMerged finds boundaries where a fresh uppercase word run begins right
// after numeric content, which is how two concatenated product groups meet.
func splitMerged(line string) []string {
	tokens := strings.Fields(line)
	if len(tokens) < 4 {
		return nil
	}

	var segments []string
	start := 0
	segHasDigit := false
	for j := 1; j < len(tokens); j++ {
		prev := tokens[j-1]
		if upperRunRe.MatchString(tokens[j]) && digitTailRe.MatchString(prev) && segHasDigit {
			segments = append(segments, strings.Join(tokens[start:j], " "))
			start = j
			segHasDigit = false
			continue
		}
		if hasDigitRe.MatchString(tokens[j]) {
			segHasDigit = true
		}
	}
	segments = append(segments, strings.Join(tokens[start:], " "))
	return segments
}

var hasDigitRe = regexp.MustCompile(`\d`)

// hasProductIndicator requires at least one plausible product-name word.
func hasProductIndicator(segment string) bool {
	for _, tok := range strings.Fields(segment) {
		if alphaWordRe.MatchString(tok) {
			return true
		}
	}
	return false
}

// parseSegment first tries the structured pattern, then falls back to a
// permissive scan: leading alphabetic tokens form the name, the first small
// integer the quantity, the right-most amount the price.
func (s *MergedLineStrategy) parseSegment(seg string) (domain.LineItemCandidate, bool) {
	if parts, ok := parseStructured(seg); ok {
		return domain.LineItemCandidate{
			Name:       parts.name,
			Quantity:   parts.quantity,
			Price:      parts.price,
			Confidence: clampConfidence(s.scoring.MergedBase + 0.05),
			Method:     domain.MethodMergedLineSplit,
			SourceSpan: seg,
		}, true
	}

	tokens := strings.Fields(seg)
	var nameTokens []string
	rest := tokens
	for len(rest) > 0 && !hasDigitRe.MatchString(rest[0]) {
		nameTokens = append(nameTokens, rest[0])
		rest = rest[1:]
	}
	name := cleanName(strings.Join(nameTokens, " "))
	if name == "" {
		return domain.LineItemCandidate{}, false
	}

	qty := 1
	for _, tok := range rest {
		if n, ok := ParseQuantity(tok); ok && QuantityPlausible(n) {
			qty = n
			break
		}
	}
	// a bare one- or two-digit token is a quantity, not a price
	price := decimal.Zero
	found := false
	for j := len(rest) - 1; j >= 0; j-- {
		tok := strings.Trim(rest[j], ".,")
		if len(tok) < 3 {
			continue
		}
		if d, ok := ParseAmount(tok); ok && PricePlausible(d) {
			price, found = d, true
			break
		}
	}
	if !found {
		return domain.LineItemCandidate{}, false
	}

	return domain.LineItemCandidate{
		Name:       name,
		Quantity:   qty,
		Price:      price,
		Confidence: clampConfidence(s.scoring.MergedBase),
		Method:     domain.MethodMergedLineSplit,
		SourceSpan: seg,
	}, true
}
