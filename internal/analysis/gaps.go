package analysis

import "sort"

// GapItem is a term the base document weights more heavily than another.
type GapItem struct {
	Term  string  `json:"term"`
	Delta float64 `json:"delta"`
	Base  float64 `json:"base"`
	Other float64 `json:"other"`
}

// GapRecord lists the gap terms of the base document against document Vs.
type GapRecord struct {
	Vs    int       `json:"vs"`
	Items []GapItem `json:"items"`
}

// AnalyzeGaps compares vectors[base] with every other vector and keeps the
// terms whose weight difference is strictly above minDelta, largest first
// (ties by term), at most topN per record. An out of range base yields no
// records.
func AnalyzeGaps(vectors []Vector, base, topN int, minDelta float64) []GapRecord {
	records := make([]GapRecord, 0, len(vectors))
	if base < 0 || base >= len(vectors) {
		return records
	}
	baseVec := vectors[base]
	for idx, other := range vectors {
		if idx == base {
			continue
		}
		records = append(records, GapRecord{
			Vs:    idx,
			Items: gapItems(baseVec, other, topN, minDelta),
		})
	}
	return records
}

func gapItems(base, other Vector, topN int, minDelta float64) []GapItem {
	var kept []GapItem
	for term := range unionTerms(base, other) {
		b, o := base[term], other[term]
		if delta := b - o; delta > minDelta {
			kept = append(kept, GapItem{Term: term, Delta: delta, Base: b, Other: o})
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Delta != kept[j].Delta {
			return kept[i].Delta > kept[j].Delta
		}
		return kept[i].Term < kept[j].Term
	})

	n := clamp(topN, len(kept))
	items := make([]GapItem, n)
	for i := 0; i < n; i++ {
		g := kept[i]
		items[i] = GapItem{
			Term:  g.Term,
			Delta: Round4(g.Delta),
			Base:  Round4(g.Base),
			Other: Round4(g.Other),
		}
	}
	return items
}

func unionTerms(a, b Vector) map[string]struct{} {
	terms := make(map[string]struct{}, len(a)+len(b))
	for t := range a {
		terms[t] = struct{}{}
	}
	for t := range b {
		terms[t] = struct{}{}
	}
	return terms
}

// clamp bounds a requested count to [0, available].
func clamp(requested, available int) int {
	if requested <= 0 {
		return 0
	}
	if requested > available {
		return available
	}
	return requested
}
