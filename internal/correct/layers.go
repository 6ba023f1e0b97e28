package correct

import (
	"regexp"
	"strings"

	"itemize/internal/domain"
)

var (
	// moneyShapeRe matches a token whose tail looks like a thousands group,
	// with or without a corrupted leading glyph (e.g. "R,364").
	moneyShapeRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.,]*[.,]\d{3}$`)
	// glyphNumeralRe matches a token mixing letters into digit runs.
	glyphNumeralRe = regexp.MustCompile(`^[A-Za-z0-9.,]+$`)
	hasDigitRe     = regexp.MustCompile(`\d`)
	hasLetterRe    = regexp.MustCompile(`[A-Za-z]`)
	totalLabelRe   = regexp.MustCompile(`(?i)\btotal\b`)
)

// characterLayer performs token-boundary-respecting glyph substitution. A
// rule fires only inside one of its declared contexts, which is what keeps a
// corrupted "T" from being rewritten inside a product name.
func (c *Corrector) characterLayer(line string) string {
	tokens := strings.Fields(line)
	isTotalLine := totalLabelRe.MatchString(line)

	for i := range tokens {
		ctxs := tokenContexts(tokens, i, isTotalLine)
		if len(ctxs) == 0 {
			continue
		}
		tokens[i] = c.repairToken(tokens[i], ctxs)
	}
	return strings.Join(tokens, " ")
}

// tokenContexts decides which correction contexts apply to tokens[i] from
// its neighbors and shape.
func tokenContexts(tokens []string, i int, isTotalLine bool) []domain.RuleContext {
	var ctxs []domain.RuleContext
	tok := tokens[i]

	// quantity: the token sits directly before a quantity marker ("x", "@")
	if i+1 < len(tokens) {
		next := strings.ToLower(tokens[i+1])
		if next == "@" || strings.HasPrefix(next, "x") {
			ctxs = append(ctxs, domain.ContextQuantity)
		}
	}

	// price: the token follows a marker, or is itself money-shaped
	if i > 0 {
		prev := strings.ToLower(tokens[i-1])
		if prev == "@" || prev == "x" || prev == "=" {
			ctxs = append(ctxs, domain.ContextPrice)
		}
	}
	if moneyShapeRe.MatchString(tok) {
		ctxs = appendContext(ctxs, domain.ContextPrice)
	}

	// total: last token of a line carrying a total label
	if isTotalLine && i == len(tokens)-1 {
		ctxs = appendContext(ctxs, domain.ContextTotal)
		ctxs = appendContext(ctxs, domain.ContextPrice)
	}
	return ctxs
}

func appendContext(ctxs []domain.RuleContext, ctx domain.RuleContext) []domain.RuleContext {
	for _, c := range ctxs {
		if c == ctx {
			return ctxs
		}
	}
	return append(ctxs, ctx)
}

// repairToken applies whole-token rules first, then per-glyph repair for
// malformed numerals.
func (c *Corrector) repairToken(tok string, ctxs []domain.RuleContext) string {
	for i := range c.rules.Characters {
		r := &c.rules.Characters[i]
		if tok != r.From {
			continue
		}
		for _, ctx := range ctxs {
			if r.HasContext(ctx) {
				return r.To
			}
		}
	}

	if !looksMalformedNumeral(tok) {
		return tok
	}
	var b strings.Builder
	b.Grow(len(tok))
	for _, ch := range tok {
		b.WriteString(c.repairGlyph(string(ch), ctxs))
	}
	return b.String()
}

func (c *Corrector) repairGlyph(glyph string, ctxs []domain.RuleContext) string {
	for i := range c.rules.Characters {
		r := &c.rules.Characters[i]
		if r.From != glyph {
			continue
		}
		for _, ctx := range ctxs {
			if r.HasContext(ctx) {
				return r.To
			}
		}
	}
	return glyph
}

// looksMalformedNumeral reports whether a token reads as a numeral with
// recognition damage: letters mixed into a digit/separator run.
func looksMalformedNumeral(tok string) bool {
	return glyphNumeralRe.MatchString(tok) &&
		hasDigitRe.MatchString(tok) &&
		hasLetterRe.MatchString(tok)
}
