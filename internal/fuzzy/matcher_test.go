package fuzzy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemize/internal/fuzzy"
)

func TestSimilarity_Identity(t *testing.T) {
	for _, s := range []string{"", "ES TEKLEK", "a", "6,364"} {
		assert.Equal(t, 1.0, fuzzy.Similarity(s, s))
	}
}

func TestSimilarity_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"ES TEKLEK", "ES TEKLEX"},
		{"MIE GACOAN", "M1E GACDAN"},
		{"", "abc"},
		{"short", "a much longer string"},
	}
	for _, p := range pairs {
		assert.Equal(t, fuzzy.Similarity(p[0], p[1]), fuzzy.Similarity(p[1], p[0]))
	}
}

func TestSimilarity_KnownValues(t *testing.T) {
	// one substitution across nine characters
	assert.InDelta(t, 8.0/9.0, fuzzy.Similarity("ES TEKLEK", "ES TEKLEX"), 1e-9)
	// no characters in common with an empty string
	assert.Equal(t, 0.0, fuzzy.Similarity("", "abc"))
}

func TestSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"completely", "different"},
		{"x", "yyyyyyyyyy"},
		{"ES TEKLEK", "PANGSIT GORENG"},
	}
	for _, p := range pairs {
		sim := fuzzy.Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, sim, 0.0)
		assert.LessOrEqual(t, sim, 1.0)
	}
}

func TestMatcher_CoverageMatch(t *testing.T) {
	m := fuzzy.NewMatcher(0.6, 0.5)

	// one of two phrase words covered is enough at ratio 0.5
	assert.True(t, m.IsMatch("E5 TEKLEX 1 x 6,364", "ES TEKLEK"))
	assert.True(t, m.IsMatch("ES TEKLEK", "ES TEKLEK"))
	assert.False(t, m.IsMatch("KASIR BUDI", "ES TEKLEK"))
}

func TestMatcher_MonotonicInSimilarity(t *testing.T) {
	m := fuzzy.NewMatcher(0.6, 0.5)
	phrase := "TEKLEK"

	// strictly decreasing similarity to the phrase: 1.0, 5/6, 4/6, 3/6, 0
	lines := []string{"TEKLEK", "TEKLEX", "TAKLEX", "TAKLOX", "XXXXXX"}

	prevSim := 1.1
	prevMatched := true
	for _, line := range lines {
		sim := fuzzy.Similarity(line, phrase)
		require.Less(t, sim, prevSim, "line %q breaks the similarity ordering", line)

		matched := m.IsMatch(line, phrase)
		if matched {
			assert.True(t, prevMatched,
				"closer line must match when %q does", line)
		}
		prevSim = sim
		prevMatched = matched
	}

	// the boundary sits between 4/6 and 3/6 at a 0.6 word threshold
	assert.True(t, m.IsMatch("TAKLEX", phrase))
	assert.False(t, m.IsMatch("TAKLOX", phrase))
}

func TestMatcher_EmptyInputsNeverMatch(t *testing.T) {
	m := fuzzy.NewMatcher(0.6, 0.5)
	assert.False(t, m.IsMatch("", "ES TEKLEK"))
	assert.False(t, m.IsMatch("ES TEKLEK", ""))
}

func TestMatcher_ThresholdGates(t *testing.T) {
	strict := fuzzy.NewMatcher(0.99, 1.0)
	assert.False(t, strict.IsMatch("E5 TEKLEX", "ES TEKLEK"))
	assert.True(t, strict.IsMatch("ES TEKLEK", "ES TEKLEK"))
}

func TestConfidence_Weighting(t *testing.T) {
	w := fuzzy.Weights{Similarity: 0.4, Quantity: 0.2, Price: 0.2, Keyword: 0.1, Shape: 0.1}

	assert.InDelta(t, 0.4, fuzzy.Confidence(1.0, fuzzy.Signals{}, w), 1e-9)
	assert.InDelta(t, 0.6, fuzzy.Confidence(1.0, fuzzy.Signals{QuantityPlausible: true}, w), 1e-9)

	all := fuzzy.Signals{QuantityPlausible: true, PricePlausible: true, HasContextKeyword: true, MatchesShape: true}
	assert.InDelta(t, 1.0, fuzzy.Confidence(1.0, all, w), 1e-9)
}

func TestConfidence_Clamped(t *testing.T) {
	w := fuzzy.Weights{Similarity: 2.0, Quantity: 2.0}
	all := fuzzy.Signals{QuantityPlausible: true}
	assert.Equal(t, 1.0, fuzzy.Confidence(1.0, all, w))
	assert.Equal(t, 0.0, fuzzy.Confidence(-5.0, fuzzy.Signals{}, fuzzy.Weights{Similarity: 1.0}))
}
