package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"itemize/internal/domain"
	"itemize/internal/ruleset"
)

// structuredPatterns cover the token-order and separator variants of
// NAME [:] QUANTITY [x] [@] PRICE [=] TOTAL seen across the corpus.
var structuredPatterns = []*regexp.Regexp{
	// ES TEKLEK: 1 x @ 6,364 = 6,364
	regexp.MustCompile(`^(?P<name>[A-Za-z][A-Za-z0-9 .'&/-]*?)\s*:?\s+(?P<qty>\d{1,3})\s*[xX]\s*@?\s*(?P<unit>\d[\d.,]*)(?:\s*=?\s+(?P<total>\d[\d.,]*))?\s*$`),
	// 2 x ES TEKLEK 12,728
	regexp.MustCompile(`^(?P<qty>\d{1,3})\s*[xX]\s+(?P<name>[A-Za-z][A-Za-z0-9 .'&/-]*?)\s+@?\s*(?P<total>\d[\d.,]*)\s*$`),
	// ES TEKLEK 1 @ 6,364 6,364
	regexp.MustCompile(`^(?P<name>[A-Za-z][A-Za-z0-9 .'&/-]*?)\s+(?P<qty>\d{1,3})\s*@\s*(?P<unit>\d[\d.,]*)(?:\s*=?\s+(?P<total>\d[\d.,]*))?\s*$`),
}

// itemParts is the raw outcome of a structured pattern match, shared by the
// structured and merged-line strategies.
type itemParts struct {
	name     string
	quantity int
	price    decimal.Decimal
	hasTotal bool
	span     string
}

// matchStructured returns the first structured pattern matching the line,
// or nil. Exported logic lives in parseStructured; the classifier also uses
// this to guarantee structured lines are never skipped.
func matchStructured(line string) *regexp.Regexp {
	for _, re := range structuredPatterns {
		if re.MatchString(line) {
			return re
		}
	}
	return nil
}

// parseStructured extracts name, quantity, and price from a structured line.
// When both a unit price and a total are present the right-most numeric
// group (the total) is authoritative.
func parseStructured(line string) (*itemParts, bool) {
	re := matchStructured(line)
	if re == nil {
		return nil, false
	}
	m := re.FindStringSubmatch(line)
	groups := map[string]string{}
	for i, gname := range re.SubexpNames() {
		if gname != "" && i < len(m) {
			groups[gname] = m[i]
		}
	}

	name := cleanName(groups["name"])
	if name == "" {
		return nil, false
	}
	qty, ok := ParseQuantity(groups["qty"])
	if !ok {
		return nil, false
	}

	parts := &itemParts{name: name, quantity: qty, span: line}
	if g := groups["total"]; g != "" {
		if d, ok := ParseAmount(g); ok {
			parts.price = d
			parts.hasTotal = groups["unit"] != ""
			return parts, true
		}
	}
	if g := groups["unit"]; g != "" {
		if d, ok := ParseAmount(g); ok {
			parts.price = d
			return parts, true
		}
	}
	return nil, false
}

var nameTrimRe = regexp.MustCompile(`[ :.'&/-]+$`)

func cleanName(name string) string {
	name = nameTrimRe.ReplaceAllString(strings.TrimSpace(name), "")
	// a stray single-glyph leading token marks the whole name as recognition
	// junk; refusing here lets the fuzzy fallback recover the line instead
	if first, _, found := strings.Cut(name, " "); found && len(first) == 1 {
		return ""
	}
	letters := 0
	for _, r := range name {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			letters++
		}
	}
	if letters < 2 {
		return ""
	}
	return name
}

// StructuredStrategy matches one complete line item on a single line.
type StructuredStrategy struct {
	scoring ruleset.Scoring
}

func (s *StructuredStrategy) Name() string { return "structured_single_line" }

func (s *StructuredStrategy) Parse(doc *Document, i int) ([]domain.LineItemCandidate, int, bool) {
	parts, ok := parseStructured(doc.Lines[i])
	if !ok {
		return nil, 0, false
	}
	conf := s.scoring.StructuredBase
	if parts.hasTotal {
		conf += 0.05
	}
	cand := domain.LineItemCandidate{
		Name:       parts.name,
		Quantity:   parts.quantity,
		Price:      parts.price,
		Confidence: clampConfidence(conf),
		Method:     domain.MethodStructuredSingleLine,
		SourceSpan: parts.span,
	}
	return []domain.LineItemCandidate{cand}, 1, true
}
