package analysis_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-engine/textgap/internal/analysis"
)

func TestAnalyzeEmptyInput(t *testing.T) {
	res := analysis.Analyze([]string{}, analysis.DefaultOptions())

	assert.Equal(t, [][]analysis.Keyword{}, res.TopKeywords)
	assert.Equal(t, [][]float64{}, res.Similarity)
	assert.Equal(t, []analysis.GapRecord{}, res.Gaps)
	assert.Equal(t, 0, res.VocabSize)

	body, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"top_keywords":[],"similarity":[],"gaps":[],"vocab_size":0}`, string(body))
}

func TestAnalyzeIdenticalDocuments(t *testing.T) {
	res := analysis.Analyze([]string{"cats dogs", "cats dogs"}, analysis.DefaultOptions())

	assert.Equal(t, [][]float64{{1, 1}, {1, 1}}, res.Similarity)
	require.Len(t, res.Gaps, 1)
	assert.Equal(t, 1, res.Gaps[0].Vs)
	assert.Empty(t, res.Gaps[0].Items)
	assert.Equal(t, 2, res.VocabSize)
}

func TestAnalyzeAllStopwords(t *testing.T) {
	res := analysis.Analyze([]string{"a an the"}, analysis.DefaultOptions())

	assert.Equal(t, [][]analysis.Keyword{{}}, res.TopKeywords)
	assert.Equal(t, [][]float64{{0}}, res.Similarity)
	assert.Equal(t, []analysis.GapRecord{}, res.Gaps)
	assert.Equal(t, 0, res.VocabSize)
}

func TestAnalyzeTopKeywords(t *testing.T) {
	opts := analysis.DefaultOptions()
	res := analysis.Analyze([]string{"apple banana", "apple orange"}, opts)

	require.Len(t, res.TopKeywords, 2)
	assert.Equal(t, []analysis.Keyword{
		{Term: "banana", Score: 0.7027},
		{Term: "apple", Score: 0.5},
	}, res.TopKeywords[0])
	assert.Equal(t, "orange", res.TopKeywords[1][0].Term)
	assert.Equal(t, 3, res.VocabSize)

	opts.TopN = 1
	res = analysis.Analyze([]string{"apple banana", "apple orange"}, opts)
	assert.Len(t, res.TopKeywords[0], 1)

	opts.TopN = 0
	res = analysis.Analyze([]string{"apple banana"}, opts)
	assert.Equal(t, [][]analysis.Keyword{{}}, res.TopKeywords)
}

func TestAnalyzeKeywordTiesOrderByTerm(t *testing.T) {
	res := analysis.Analyze([]string{"zebra yak xenon"}, analysis.DefaultOptions())

	terms := make([]string, 0, 3)
	for _, kw := range res.TopKeywords[0] {
		terms = append(terms, kw.Term)
	}
	assert.Equal(t, []string{"xenon", "yak", "zebra"}, terms)
}

func TestAnalyzeGapBase(t *testing.T) {
	docs := []string{
		"rust compiler borrow checker ownership",
		"python interpreter garbage collector",
		"go compiler garbage collector goroutines",
	}
	opts := analysis.DefaultOptions()
	opts.GapBase = 2
	opts.GapMinDelta = 0.1

	res := analysis.Analyze(docs, opts)

	require.Len(t, res.Gaps, 2)
	for _, rec := range res.Gaps {
		assert.NotEqual(t, 2, rec.Vs)
		for _, item := range rec.Items {
			assert.Greater(t, item.Delta, 0.1)
		}
	}

	opts.GapBase = 7
	assert.Empty(t, analysis.Analyze(docs, opts).Gaps)
}

func TestAnalyzeDeterministic(t *testing.T) {
	docs := []string{
		"Search engines rank documents by term weight and document frequency.",
		"Crawlers fetch documents, parse links and respect robots files.",
		"Ranking documents needs weights; crawling needs politeness.",
	}

	first, err := json.Marshal(analysis.Analyze(docs, analysis.DefaultOptions()))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := json.Marshal(analysis.Analyze(docs, analysis.DefaultOptions()))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestAnalyzerCustomStopwords(t *testing.T) {
	a := analysis.NewAnalyzer(analysis.NewTokenizer(analysis.NewStopwordSet("cats")))

	res := a.Analyze([]string{"cats dogs"}, analysis.DefaultOptions())

	assert.Equal(t, []analysis.Keyword{{Term: "dogs", Score: 1}}, res.TopKeywords[0])
	assert.Equal(t, 1, res.VocabSize)
}
