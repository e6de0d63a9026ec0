package analysis

import (
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// Vector is a sparse TF-IDF vector. Absent terms weigh zero.
type Vector map[string]float64

// Terms returns the vector's terms in lexicographic order.
func (v Vector) Terms() []string {
	terms := make([]string, 0, len(v))
	for t := range v {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// Norm is the Euclidean length, summed in term order so results are reproducible.
func (v Vector) Norm() float64 {
	var sum float64
	for _, t := range v.Terms() {
		sum += v[t] * v[t]
	}
	return math.Sqrt(sum)
}

// Corpus holds the weighted vectors of one batch of documents together with
// the statistics they were derived from. It is built per call and never reused.
type Corpus struct {
	Vectors    []Vector
	IDF        map[string]float64
	Vocabulary map[string]struct{}

	// postings maps each term to the indices of the documents containing it.
	postings map[string]*roaring.Bitmap
}

// DocumentFrequency returns the number of documents containing term.
func (c *Corpus) DocumentFrequency(term string) int {
	bm, ok := c.postings[term]
	if !ok {
		return 0
	}
	return int(bm.GetCardinality())
}

// Vectorizer builds TF-IDF vectors for a batch of documents.
type Vectorizer struct {
	tokenizer *Tokenizer
}

// NewVectorizer returns a vectorizer using tok; nil selects the default tokenizer.
func NewVectorizer(tok *Tokenizer) *Vectorizer {
	if tok == nil {
		tok = defaultTokenizer
	}
	return &Vectorizer{tokenizer: tok}
}

// Build tokenizes every document and weights each term by
// tf * (ln((1+N)/(1+df)) + 1), with N and df taken from docs alone.
func (v *Vectorizer) Build(docs []string) *Corpus {
	n := len(docs)
	corpus := &Corpus{
		Vectors:    make([]Vector, n),
		IDF:        make(map[string]float64),
		Vocabulary: make(map[string]struct{}),
		postings:   make(map[string]*roaring.Bitmap),
	}

	// 1. Term frequencies and postings
	tfs := make([]map[string]float64, n)
	for i, doc := range docs {
		tfs[i] = termFrequencies(v.tokenizer.Tokenize(doc))
		for term := range tfs[i] {
			bm, ok := corpus.postings[term]
			if !ok {
				bm = roaring.New()
				corpus.postings[term] = bm
			}
			bm.Add(uint32(i))
		}
	}

	// 2. Smoothed IDF
	for term := range corpus.postings {
		df := float64(corpus.DocumentFrequency(term))
		corpus.IDF[term] = math.Log((1+float64(n))/(1+df)) + 1
	}

	// 3. TF-IDF
	for i, tf := range tfs {
		vec := make(Vector, len(tf))
		for term, f := range tf {
			vec[term] = f * corpus.IDF[term]
			corpus.Vocabulary[term] = struct{}{}
		}
		corpus.Vectors[i] = vec
	}

	return corpus
}

// BuildCorpus vectorizes docs with the default tokenizer.
func BuildCorpus(docs []string) *Corpus {
	return NewVectorizer(nil).Build(docs)
}

func termFrequencies(tokens []string) map[string]float64 {
	tf := make(map[string]float64)
	if len(tokens) == 0 {
		return tf
	}
	for _, token := range tokens {
		tf[token]++
	}
	total := float64(len(tokens))
	for token, count := range tf {
		tf[token] = count / total
	}
	return tf
}
