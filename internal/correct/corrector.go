// Package correct applies the layered lexical correction pass to raw
// recognition output: artifact cleanup, context-gated character repair,
// whole-phrase word repair, and label-driven numeral repair. The pass is a
// pure text transform and is idempotent after the first application.
package correct

import (
	"regexp"
	"strings"

	"itemize/internal/ruleset"
)

// Corrector rewrites corrupted recognition text using an immutable RuleSet.
// Safe for concurrent use.
type Corrector struct {
	rules *ruleset.RuleSet
	words []compiledWordRule
}

type compiledWordRule struct {
	re *regexp.Regexp
	to string
}

// New builds a Corrector from a compiled RuleSet. Word rules below the
// configured confidence gate are dropped here, not consulted per call.
func New(rs *ruleset.RuleSet) *Corrector {
	c := &Corrector{rules: rs}
	for _, w := range rs.Words {
		if w.Confidence < rs.Scoring.MinRuleConfidence {
			continue
		}
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(w.From) + `\b`)
		c.words = append(c.words, compiledWordRule{re: re, to: w.To})
	}
	return c
}

var newlineRe = regexp.MustCompile(`\r\n?`)

// Correct applies the full correction pipeline. It never panics, maps empty
// input to empty output, and Correct(Correct(x)) == Correct(x).
func (c *Corrector) Correct(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(newlineRe.ReplaceAllString(text, "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = c.cleanup(line)
		if line == "" {
			continue
		}
		line = c.characterLayer(line)
		line = c.wordLayer(line)
		line = c.contextLayer(line)
		line = c.cleanup(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// wordLayer replaces whole corrupted phrases with their canonical form.
func (c *Corrector) wordLayer(line string) string {
	for _, w := range c.words {
		line = w.re.ReplaceAllString(line, w.to)
	}
	return line
}

// contextLayer fixes a malformed numeral trailing a recognized label, e.g.
// a tax or subtotal line whose amount came through garbled.
func (c *Corrector) contextLayer(line string) string {
	for i := range c.rules.Contexts {
		cr := &c.rules.Contexts[i]
		if cr.Confidence < c.rules.Scoring.MinRuleConfidence {
			continue
		}
		if !cr.MatchLabel(line) {
			continue
		}
		tokens := strings.Fields(line)
		if len(tokens) < 2 {
			continue
		}
		last := tokens[len(tokens)-1]
		if cr.MatchValue(last) {
			tokens[len(tokens)-1] = cr.Correction
			return strings.Join(tokens, " ")
		}
	}
	return line
}
