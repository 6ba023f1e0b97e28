package parser_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemize/internal/domain"
	"itemize/internal/parser"
	"itemize/internal/ruleset"
)

func newEngine(t *testing.T) *parser.Engine {
	t.Helper()
	rs, err := ruleset.Builtin()
	require.NoError(t, err)
	return parser.NewEngine(rs)
}

func assertInvariants(t *testing.T, cands []domain.LineItemCandidate) {
	t.Helper()
	for i := range cands {
		c := &cands[i]
		assert.GreaterOrEqual(t, c.Quantity, 1)
		assert.False(t, c.Price.IsNegative())
		assert.GreaterOrEqual(t, c.Confidence, 0.0)
		assert.LessOrEqual(t, c.Confidence, 1.0)
		assert.NotEmpty(t, c.Name)
	}
}

func TestEngine_StructuredSingleLine(t *testing.T) {
	e := newEngine(t)
	cands := e.Parse([]string{"ES TEKLEK: 1 x @ 6,364 = 6,364"})

	require.Len(t, cands, 1)
	c := cands[0]
	assert.Equal(t, "ES TEKLEK", c.Name)
	assert.Equal(t, 1, c.Quantity)
	assert.True(t, c.Price.Equal(decimal.NewFromInt(6364)))
	assert.Equal(t, domain.MethodStructuredSingleLine, c.Method)
	assert.GreaterOrEqual(t, c.Confidence, 0.9)
	assertInvariants(t, cands)
}

func TestEngine_StructuredVariants(t *testing.T) {
	e := newEngine(t)
	cases := []struct {
		line  string
		name  string
		qty   int
		price int64
	}{
		{"2 x PANGSIT GORENG 12,728", "PANGSIT GORENG", 2, 12728},
		{"SIOMAY AYAM 1 @ 9,091 9,091", "SIOMAY AYAM", 1, 9091},
		{"UDANG KEJU 3 x 27,273", "UDANG KEJU", 3, 27273},
	}
	for _, tc := range cases {
		cands := e.Parse([]string{tc.line})
		require.Len(t, cands, 1, "line %q", tc.line)
		assert.Equal(t, tc.name, cands[0].Name)
		assert.Equal(t, tc.qty, cands[0].Quantity)
		assert.True(t, cands[0].Price.Equal(decimal.NewFromInt(tc.price)), "line %q: got %s", tc.line, cands[0].Price)
		assert.Equal(t, domain.MethodStructuredSingleLine, cands[0].Method)
	}
}

func TestEngine_StructuredRightmostTotalWins(t *testing.T) {
	e := newEngine(t)
	cands := e.Parse([]string{"ES PETAK UMPET: 2 x @ 5,000 = 10,000"})

	require.Len(t, cands, 1)
	assert.True(t, cands[0].Price.Equal(decimal.NewFromInt(10000)))
}

func TestEngine_TwoLine(t *testing.T) {
	e := newEngine(t)
	cands := e.Parse([]string{"ES TEKLEK", "1 x @ 6,364 6,364"})

	require.Len(t, cands, 1)
	c := cands[0]
	assert.Equal(t, "ES TEKLEK", c.Name)
	assert.Equal(t, 1, c.Quantity)
	assert.True(t, c.Price.Equal(decimal.NewFromInt(6364)))
	assert.Equal(t, domain.MethodTwoLine, c.Method)
	assert.InDelta(t, 0.95, c.Confidence, 1e-9)
	assertInvariants(t, cands)
}

func TestEngine_TwoLineNotPairedAcrossSkippedLine(t *testing.T) {
	e := newEngine(t)
	// the quantity line belongs to nothing once a summary line intervenes
	cands := e.Parse([]string{"SIOMAY AYAM", "TOTAL 18,000"})
	for _, c := range cands {
		assert.NotEqual(t, domain.MethodTwoLine, c.Method)
	}
}

func TestEngine_MergedLine(t *testing.T) {
	e := newEngine(t)
	cands := e.Parse([]string{"ES TEKLEK 1 6,364 MIE GACOAN 1 x @ 10,000 10,000"})

	require.GreaterOrEqual(t, len(cands), 2)
	byName := map[string]domain.LineItemCandidate{}
	for _, c := range cands {
		assert.Equal(t, domain.MethodMergedLineSplit, c.Method)
		byName[c.Name] = c
	}

	teklek, ok := byName["ES TEKLEK"]
	require.True(t, ok)
	assert.Equal(t, 1, teklek.Quantity)
	assert.True(t, teklek.Price.Equal(decimal.NewFromInt(6364)))

	gacoan, ok := byName["MIE GACOAN"]
	require.True(t, ok)
	assert.Equal(t, 1, gacoan.Quantity)
	assert.True(t, gacoan.Price.Equal(decimal.NewFromInt(10000)))
	assertInvariants(t, cands)
}

func TestEngine_VendorSpecific(t *testing.T) {
	e := newEngine(t)
	// the footer supplies the vendor keyword; the columnar line matches no
	// earlier strategy
	cands := e.Parse([]string{
		"UDANG KEJU 2 9.091 18.182",
		"www.miegacoan.co.id",
	})

	require.Len(t, cands, 1)
	c := cands[0]
	assert.Equal(t, "UDANG KEJU", c.Name)
	assert.Equal(t, 2, c.Quantity)
	assert.True(t, c.Price.Equal(decimal.NewFromInt(18182)))
	assert.Equal(t, domain.MethodVendorSpecific, c.Method)
	// unit times quantity corroborates the total
	assert.InDelta(t, 0.9, c.Confidence, 1e-9)
}

func TestEngine_VendorNeedsKeywordEvidence(t *testing.T) {
	e := newEngine(t)
	cands := e.Parse([]string{"UDANG KEJU 2 9.091 18.182"})
	for _, c := range cands {
		assert.NotEqual(t, domain.MethodVendorSpecific, c.Method)
	}
}

func TestEngine_FuzzyFallback(t *testing.T) {
	e := newEngine(t)
	// junk-prefixed name defeats the structured pattern; the vocabulary
	// recovers it
	cands := e.Parse([]string{"R ES TENLEK 1 x @ 6,364 6,364"})

	require.Len(t, cands, 1)
	c := cands[0]
	assert.Equal(t, "ES TEKLEK", c.Name)
	assert.Equal(t, 1, c.Quantity)
	assert.True(t, c.Price.Equal(decimal.NewFromInt(6364)))
	assert.Equal(t, domain.MethodFuzzyFallback, c.Method)
	assert.Greater(t, c.Confidence, 0.5)
	assertInvariants(t, cands)
}

func TestEngine_FuzzyFallbackNeedsVocabularyHit(t *testing.T) {
	e := newEngine(t)
	cands := e.Parse([]string{"QWERTY 1 5,000"})
	assert.Empty(t, cands)
}

func TestEngine_SkippedLinesContributeNothing(t *testing.T) {
	e := newEngine(t)
	cands := e.Parse([]string{
		"Tanggal: 09-09-24",
		"Kasir: BUDI",
		"SUB TOTAL 16,364",
		"TOTAL 18,000",
		"TERIMA KASIH",
	})
	assert.Empty(t, cands)
}

func TestEngine_DocumentOrderPreserved(t *testing.T) {
	e := newEngine(t)
	cands := e.Parse([]string{
		"ES TEKLEK: 1 x @ 6,364 = 6,364",
		"MIE SUIT: 2 x @ 10,000 = 20,000",
	})

	require.Len(t, cands, 2)
	assert.Equal(t, "ES TEKLEK", cands[0].Name)
	assert.Equal(t, "MIE SUIT", cands[1].Name)
}
