package analysis_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-engine/textgap/internal/analysis"
)

func TestBuildCorpus(t *testing.T) {
	corpus := analysis.BuildCorpus([]string{
		"apple banana",
		"apple orange",
	})

	require.Len(t, corpus.Vectors, 2)
	assert.Len(t, corpus.Vocabulary, 3)

	// apple is in both documents: ln(3/3) + 1 = 1
	// banana is in one: ln(3/2) + 1
	idfRare := math.Log(1.5) + 1
	assert.InDelta(t, 1.0, corpus.IDF["apple"], 1e-12)
	assert.InDelta(t, idfRare, corpus.IDF["banana"], 1e-12)
	assert.InDelta(t, idfRare, corpus.IDF["orange"], 1e-12)

	assert.InDelta(t, 0.5, corpus.Vectors[0]["apple"], 1e-12)
	assert.InDelta(t, 0.5*idfRare, corpus.Vectors[0]["banana"], 1e-12)
	assert.NotContains(t, corpus.Vectors[0], "orange")

	assert.Equal(t, 2, corpus.DocumentFrequency("apple"))
	assert.Equal(t, 1, corpus.DocumentFrequency("orange"))
	assert.Equal(t, 0, corpus.DocumentFrequency("kiwi"))
}

func TestBuildCorpusTermFrequency(t *testing.T) {
	corpus := analysis.BuildCorpus([]string{"go go go rust"})

	// N=1, df=1 for every term, so idf = ln(2/2) + 1 = 1
	assert.InDelta(t, 0.75, corpus.Vectors[0]["go"], 1e-12)
	assert.InDelta(t, 0.25, corpus.Vectors[0]["rust"], 1e-12)
}

func TestBuildCorpusEmptyDocuments(t *testing.T) {
	corpus := analysis.BuildCorpus([]string{"", "the and of", "signal"})

	require.Len(t, corpus.Vectors, 3)
	assert.Empty(t, corpus.Vectors[0])
	assert.Empty(t, corpus.Vectors[1])
	assert.Len(t, corpus.Vectors[2], 1)
	// Empty documents still count towards N.
	assert.InDelta(t, math.Log(4.0/2.0)+1, corpus.IDF["signal"], 1e-12)
}

func TestBuildCorpusNoDocuments(t *testing.T) {
	corpus := analysis.BuildCorpus(nil)

	assert.Empty(t, corpus.Vectors)
	assert.Empty(t, corpus.IDF)
	assert.Empty(t, corpus.Vocabulary)
}

func TestIDFIsPositive(t *testing.T) {
	corpus := analysis.BuildCorpus([]string{"shared alpha", "shared beta", "shared gamma"})

	for term, idf := range corpus.IDF {
		assert.Greater(t, idf, 0.0, term)
	}
}

func TestBuildCorpusIsolatedPerCall(t *testing.T) {
	v := analysis.NewVectorizer(nil)
	first := v.Build([]string{"alpha beta"})
	v.Build([]string{"gamma delta", "alpha"})
	again := v.Build([]string{"alpha beta"})

	assert.Equal(t, first.Vectors, again.Vectors)
	assert.Equal(t, first.IDF, again.IDF)
}

func TestVectorNorm(t *testing.T) {
	vec := analysis.Vector{"a": 3, "b": 4}

	assert.Equal(t, 5.0, vec.Norm())
	assert.Equal(t, []string{"a", "b"}, vec.Terms())
	assert.Equal(t, 0.0, analysis.Vector{}.Norm())
}

func TestIDFFollowsDocumentFrequency(t *testing.T) {
	corpus := analysis.BuildCorpus([]string{"apple banana", "apple orange", "apple"})

	n := 3.0
	for term := range corpus.Vocabulary {
		df := float64(corpus.DocumentFrequency(term))
		assert.InDelta(t, math.Log((1+n)/(1+df))+1, corpus.IDF[term], 1e-12, term)
	}
	assert.Equal(t, 3, corpus.DocumentFrequency("apple"))
}
