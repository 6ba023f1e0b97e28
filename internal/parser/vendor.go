package parser

import (
	"strings"

	"itemize/internal/domain"
	"itemize/internal/ruleset"
)

// VendorStrategy matches looser columnar layouts (NAME QUANTITY UNITPRICE
// TOTALPRICE with no explicit separators). It only runs when the document
// carries corroborating keyword evidence for a vendor profile, and applies
// that profile's scoped character map before matching.
type VendorStrategy struct {
	scoring ruleset.Scoring
}

func (s *VendorStrategy) Name() string { return "vendor_specific" }

func (s *VendorStrategy) Parse(doc *Document, i int) ([]domain.LineItemCandidate, int, bool) {
	v := doc.Vendor
	if v == nil {
		return nil, 0, false
	}
	line := applyVendorMap(doc.Lines[i], v)

	for _, re := range v.LineRegexps() {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		groups := map[string]string{}
		for gi, gname := range re.SubexpNames() {
			if gname != "" && gi < len(m) {
				groups[gname] = m[gi]
			}
		}
		name := cleanName(groups["name"])
		if name == "" {
			continue
		}
		qty, ok := ParseQuantity(groups["qty"])
		if !ok {
			continue
		}
		total, ok := ParseAmount(groups["total"])
		if !ok {
			continue
		}

		conf := s.scoring.VendorBase
		// unit * quantity agreeing with the total corroborates the parse
		if unit, uok := ParseAmount(groups["unit"]); uok {
			expected := unit.Mul(decimalFromInt(qty))
			if expected.Equal(total) {
				conf += 0.1
			}
		}
		cand := domain.LineItemCandidate{
			Name:       name,
			Quantity:   qty,
			Price:      total,
			Confidence: clampConfidence(conf),
			Method:     domain.MethodVendorSpecific,
			SourceSpan: doc.Lines[i],
		}
		return []domain.LineItemCandidate{cand}, 1, true
	}
	return nil, 0, false
}

// applyVendorMap runs the vendor's micro correction pass: its character map
// applied inside malformed numeral tokens only.
func applyVendorMap(line string, v *ruleset.VendorProfile) string {
	if len(v.CharacterMap) == 0 {
		return line
	}
	tokens := strings.Fields(line)
	for i, tok := range tokens {
		if !tokenLooksNumeric(tok) {
			continue
		}
		var b strings.Builder
		b.Grow(len(tok))
		for _, ch := range tok {
			if to, ok := v.CharacterMap[string(ch)]; ok {
				b.WriteString(to)
			} else {
				b.WriteRune(ch)
			}
		}
		tokens[i] = b.String()
	}
	return strings.Join(tokens, " ")
}

// tokenLooksNumeric reports whether a token is mostly digits and separators,
// so a vendor map never rewrites glyphs inside a product name.
func tokenLooksNumeric(tok string) bool {
	digits := 0
	for _, ch := range tok {
		switch {
		case ch >= '0' && ch <= '9':
			digits++
		case ch == '.' || ch == ',':
		case (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z'):
		default:
			return false
		}
	}
	return digits > 0 && digits*2 >= len(tok)
}
