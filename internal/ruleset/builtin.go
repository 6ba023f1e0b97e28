package ruleset

import "itemize/internal/domain"

// builtin returns the uncompiled builtin rule data. It covers the corruption
// patterns and vendor layouts observed in the initial receipt corpus;
// anything newer belongs in a JSON overlay, not here.
func builtin() *RuleSet {
	return &RuleSet{
		Version: "builtin-1",
		Characters: []CharacterRule{
			{From: "T", To: "1", Contexts: []domain.RuleContext{domain.ContextQuantity}},
			{From: "l", To: "1", Contexts: []domain.RuleContext{domain.ContextQuantity, domain.ContextPrice}},
			{From: "I", To: "1", Contexts: []domain.RuleContext{domain.ContextQuantity, domain.ContextPrice}},
			{From: "O", To: "0", Contexts: []domain.RuleContext{domain.ContextQuantity, domain.ContextPrice, domain.ContextTotal}},
			{From: "o", To: "0", Contexts: []domain.RuleContext{domain.ContextPrice, domain.ContextTotal}},
			{From: "S", To: "5", Contexts: []domain.RuleContext{domain.ContextPrice, domain.ContextTotal}},
			{From: "B", To: "8", Contexts: []domain.RuleContext{domain.ContextPrice}},
			{From: "R", To: "6", Contexts: []domain.RuleContext{domain.ContextPrice}},
			{From: "Z", To: "2", Contexts: []domain.RuleContext{domain.ContextPrice}},
			{From: "g", To: "9", Contexts: []domain.RuleContext{domain.ContextPrice}},
		},
		Words: []WordRule{
			{From: "M1E", To: "MIE", Confidence: 0.95},
			{From: "GAC0AN", To: "GACOAN", Confidence: 0.95},
			{From: "5UB TOTAL", To: "SUB TOTAL", Confidence: 0.95},
			{From: "SU8 TOTAL", To: "SUB TOTAL", Confidence: 0.95},
			{From: "T0TAL", To: "TOTAL", Confidence: 0.95},
			{From: "TUNA1", To: "TUNAI", Confidence: 0.9},
			{From: "PAJAX", To: "PAJAK", Confidence: 0.9},
			// below the 0.9 gate on purpose; too speculative to apply
			{From: "KEMBAL1AN", To: "KEMBALIAN", Confidence: 0.85},
		},
		Contexts: []ContextRule{
			{
				Label:      `(?i)\bsub\s*total\b`,
				ValueShape: `^1b[.,]?364$`,
				Correction: "16,364",
				Confidence: 0.95,
			},
			{
				Label:      `(?i)\bpajak\b.*%`,
				ValueShape: `^1[.,]?b3b$`,
				Correction: "1,636",
				Confidence: 0.9,
			},
		},
		Vendors: []VendorProfile{
			{
				Name:     "mie_gacoan",
				Keywords: []string{"GACOAN", "MIE GACOAN", "PESTA PORA ABADI"},
				CharacterMap: map[string]string{
					"O": "0",
					"I": "1",
					"S": "5",
				},
				LinePatterns: []string{
					`^(?P<name>[A-Z][A-Z .'-]{2,39}?)\s+(?P<qty>\d{1,3})\s+(?P<unit>\d[\d.,]{3,})\s+(?P<total>\d[\d.,]{3,})$`,
				},
			},
		},
		Vocabulary: []VocabularyTerm{
			{Canonical: "ES TEKLEK", Variants: []string{"ES TEKLEX", "ES TEHLEK"}},
			{Canonical: "ES GOBAK SODOR"},
			{Canonical: "ES PETAK UMPET"},
			{Canonical: "MIE GACOAN", Variants: []string{"MIE GACDAN"}},
			{Canonical: "MIE SUIT"},
			{Canonical: "MIE HOMPIMPA"},
			{Canonical: "UDANG KEJU"},
			{Canonical: "UDANG RAMBUTAN"},
			{Canonical: "SIOMAY AYAM"},
			{Canonical: "PANGSIT GORENG"},
		},
		Noise:   []string{".-", "-.", "--", "~", "*", "#", ".,", ",.", "''", "``"},
		Scoring: DefaultScoring(),
	}
}
