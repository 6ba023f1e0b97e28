package correct

import (
	"regexp"
	"strings"
)

// disallowedRe drops characters outside the allowed symbol set: letters,
// digits, whitespace, currency markers, and common receipt separators.
var disallowedRe = regexp.MustCompile(`[^A-Za-z0-9 \t.,:;%@=/()&+'"-]`)

// cleanup collapses repeated whitespace, strips characters outside the
// allowed symbol set, and removes denylisted noise fragments.
func (c *Corrector) cleanup(line string) string {
	line = disallowedRe.ReplaceAllString(line, "")
	tokens := strings.Fields(line)
	out := tokens[:0]
	for _, tok := range tokens {
		if c.isNoise(tok) {
			continue
		}
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}

func (c *Corrector) isNoise(tok string) bool {
	for _, n := range c.rules.Noise {
		if tok == n {
			return true
		}
	}
	return false
}
