// Package analysis computes comparative lexical statistics over a small set
// of documents: TF-IDF keywords, pairwise cosine similarity and content gaps.
//
// Everything here is pure and allocation-local; an Analyzer may be shared
// across goroutines.
package analysis

import "sort"

// Default parameters for Analyze.
const (
	DefaultTopN        = 15
	DefaultGapBase     = 0
	DefaultGapTop      = 10
	DefaultGapMinDelta = 0.05
)

// Options tunes a single analysis run.
type Options struct {
	TopN        int
	GapBase     int
	GapTop      int
	GapMinDelta float64
}

// DefaultOptions returns the stock parameters.
func DefaultOptions() Options {
	return Options{
		TopN:        DefaultTopN,
		GapBase:     DefaultGapBase,
		GapTop:      DefaultGapTop,
		GapMinDelta: DefaultGapMinDelta,
	}
}

// Keyword is a term and its rounded TF-IDF score.
type Keyword struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// Result is the outcome of one analysis run.
type Result struct {
	TopKeywords [][]Keyword `json:"top_keywords"`
	Similarity  [][]float64 `json:"similarity"`
	Gaps        []GapRecord `json:"gaps"`
	VocabSize   int         `json:"vocab_size"`
}

// Analyzer runs the full pipeline with a fixed tokenizer.
type Analyzer struct {
	vectorizer *Vectorizer
}

// NewAnalyzer returns an analyzer using tok; nil selects the default tokenizer.
func NewAnalyzer(tok *Tokenizer) *Analyzer {
	return &Analyzer{vectorizer: NewVectorizer(tok)}
}

// Analyze vectorizes docs once and derives keywords, similarity and gaps.
func (a *Analyzer) Analyze(docs []string, opts Options) *Result {
	corpus := a.vectorizer.Build(docs)

	keywords := make([][]Keyword, len(corpus.Vectors))
	for i, vec := range corpus.Vectors {
		keywords[i] = TopKeywords(vec, opts.TopN)
	}

	return &Result{
		TopKeywords: keywords,
		Similarity:  SimilarityMatrix(corpus.Vectors),
		Gaps:        AnalyzeGaps(corpus.Vectors, opts.GapBase, opts.GapTop, opts.GapMinDelta),
		VocabSize:   len(corpus.Vocabulary),
	}
}

// Analyze runs the pipeline with the default tokenizer.
func Analyze(docs []string, opts Options) *Result {
	return NewAnalyzer(nil).Analyze(docs, opts)
}

// TopKeywords returns the n highest weighted terms of vec, ties by term.
func TopKeywords(vec Vector, n int) []Keyword {
	terms := vec.Terms()
	sort.SliceStable(terms, func(i, j int) bool {
		return vec[terms[i]] > vec[terms[j]]
	})

	n = clamp(n, len(terms))
	out := make([]Keyword, n)
	for i := 0; i < n; i++ {
		out[i] = Keyword{Term: terms[i], Score: Round4(vec[terms[i]])}
	}
	return out
}
