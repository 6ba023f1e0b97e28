package parser

import (
	"regexp"

	"itemize/internal/domain"
	"itemize/internal/ruleset"
)

var (
	// bareNameRe matches a line that looks like nothing but a product name.
	bareNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z .'&-]{2,40}$`)
	// qtyPriceRe matches the second physical line: QUANTITY x @ PRICE TOTAL.
	qtyPriceRe = regexp.MustCompile(`^(?P<qty>\d{1,3})\s*[xX]\s*@?\s*(?P<unit>\d[\d.,]*)\s*=?\s+(?P<total>\d[\d.,]*)\s*$`)
	// qtyOnlyRe accepts the variant without a separate total column.
	qtyOnlyRe = regexp.MustCompile(`^(?P<qty>\d{1,3})\s*[xX]\s*@?\s*(?P<unit>\d[\d.,]*)\s*$`)
)

// TwoLineStrategy pairs a bare product-name line with the quantity/price
// line that follows it. The scan artifact it recovers from is a printer
// layout that puts the name and the numbers on separate physical lines.
type TwoLineStrategy struct {
	scoring ruleset.Scoring
}

func (s *TwoLineStrategy) Name() string { return "two_line" }

func (s *TwoLineStrategy) Parse(doc *Document, i int) ([]domain.LineItemCandidate, int, bool) {
	line := doc.Lines[i]
	if !bareNameRe.MatchString(line) {
		return nil, 0, false
	}
	if i+1 >= len(doc.Lines) || doc.Classes[i+1] == domain.LineSkip {
		return nil, 0, false
	}
	next := doc.Lines[i+1]

	var qtyTok, unitTok, totalTok string
	if m := qtyPriceRe.FindStringSubmatch(next); m != nil {
		qtyTok, unitTok, totalTok = m[1], m[2], m[3]
	} else if m := qtyOnlyRe.FindStringSubmatch(next); m != nil {
		qtyTok, unitTok = m[1], m[2]
	} else {
		return nil, 0, false
	}

	qty, ok := ParseQuantity(qtyTok)
	if !ok {
		return nil, 0, false
	}
	// the TOTAL value wins over the unit price when both are present
	priceTok := totalTok
	if priceTok == "" {
		priceTok = unitTok
	}
	price, ok := ParseAmount(priceTok)
	if !ok {
		return nil, 0, false
	}
	name := cleanName(line)
	if name == "" {
		return nil, 0, false
	}

	cand := domain.LineItemCandidate{
		Name:       name,
		Quantity:   qty,
		Price:      price,
		Confidence: clampConfidence(s.scoring.TwoLineConfidence),
		Method:     domain.MethodTwoLine,
		SourceSpan: line + "\n" + next,
	}
	return []domain.LineItemCandidate{cand}, 2, true
}
