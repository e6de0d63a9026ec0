package analysis

import "math"

// Cosine returns the cosine similarity of two sparse vectors, or 0 when either
// is empty or has zero length.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	var dot float64
	for _, term := range small.Terms() {
		if w, ok := large[term]; ok {
			dot += small[term] * w
		}
	}
	normA, normB := a.Norm(), b.Norm()
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (normA * normB)
}

// SimilarityMatrix computes Cosine for every ordered pair, rounded to four
// decimals. The diagonal of an empty vector is 0, not 1.
func SimilarityMatrix(vectors []Vector) [][]float64 {
	matrix := make([][]float64, len(vectors))
	for i := range vectors {
		row := make([]float64, len(vectors))
		for j := range vectors {
			row[j] = Round4(Cosine(vectors[i], vectors[j]))
		}
		matrix[i] = row
	}
	return matrix
}

// Round4 rounds x to four decimal places.
func Round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
