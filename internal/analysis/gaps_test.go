package analysis_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-engine/textgap/internal/analysis"
)

func TestAnalyzeGaps(t *testing.T) {
	corpus := analysis.BuildCorpus([]string{
		"apple banana",
		"apple orange",
	})

	gaps := analysis.AnalyzeGaps(corpus.Vectors, 0, 10, 0.05)

	require.Len(t, gaps, 1)
	assert.Equal(t, 1, gaps[0].Vs)
	require.Len(t, gaps[0].Items, 1)

	rare := analysis.Round4(0.5 * (math.Log(1.5) + 1))
	assert.Equal(t, analysis.GapItem{Term: "banana", Delta: rare, Base: rare, Other: 0}, gaps[0].Items[0])
}

func TestAnalyzeGapsOrdering(t *testing.T) {
	vectors := []analysis.Vector{
		{"alpha": 0.9, "beta": 0.5, "gamma": 0.5, "delta": 0.3, "shared": 0.4},
		{"shared": 0.4, "delta": 0.28},
		{"alpha": 1.0},
	}

	gaps := analysis.AnalyzeGaps(vectors, 0, 10, 0.05)
	require.Len(t, gaps, 2)

	terms := func(items []analysis.GapItem) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Term
		}
		return out
	}

	// delta 0.02 and 0.0 fall below the threshold; equal deltas order by term.
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, terms(gaps[0].Items))
	assert.Equal(t, 2, gaps[1].Vs)
	assert.Equal(t, []string{"beta", "gamma", "shared", "delta"}, terms(gaps[1].Items))

	for _, rec := range gaps {
		for _, item := range rec.Items {
			assert.Greater(t, item.Delta, 0.05)
		}
	}
}

func TestAnalyzeGapsTruncation(t *testing.T) {
	vectors := []analysis.Vector{
		{"a": 0.9, "b": 0.8, "c": 0.7},
		{},
	}

	assert.Len(t, analysis.AnalyzeGaps(vectors, 0, 2, 0.05)[0].Items, 2)
	assert.Empty(t, analysis.AnalyzeGaps(vectors, 0, 0, 0.05)[0].Items)
	assert.Empty(t, analysis.AnalyzeGaps(vectors, 0, -3, 0.05)[0].Items)
	assert.NotNil(t, analysis.AnalyzeGaps(vectors, 0, 0, 0.05)[0].Items)
}

func TestAnalyzeGapsThresholdIsStrict(t *testing.T) {
	vectors := []analysis.Vector{
		{"edge": 0.5, "over": 0.75},
		{},
	}

	items := analysis.AnalyzeGaps(vectors, 0, 10, 0.5)[0].Items

	require.Len(t, items, 1)
	assert.Equal(t, "over", items[0].Term)
}

func TestAnalyzeGapsOutOfRangeBase(t *testing.T) {
	vectors := []analysis.Vector{{"a": 1}, {"b": 1}}

	assert.Empty(t, analysis.AnalyzeGaps(vectors, 2, 10, 0.05))
	assert.Empty(t, analysis.AnalyzeGaps(vectors, -1, 10, 0.05))
	assert.Empty(t, analysis.AnalyzeGaps(nil, 0, 10, 0.05))
	assert.NotNil(t, analysis.AnalyzeGaps(nil, 0, 10, 0.05))
}

func TestAnalyzeGapsSkipsBase(t *testing.T) {
	vectors := []analysis.Vector{{"a": 1}, {"b": 1}, {"c": 1}}

	gaps := analysis.AnalyzeGaps(vectors, 1, 10, 0.05)

	require.Len(t, gaps, 2)
	assert.Equal(t, 0, gaps[0].Vs)
	assert.Equal(t, 2, gaps[1].Vs)
}
