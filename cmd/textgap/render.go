package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knowledge-engine/textgap/internal/analysis"
)

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func docLabel(labels []string, i int) string {
	if i < len(labels) && labels[i] != "" {
		return fmt.Sprintf("[%d] %s", i, labels[i])
	}
	return fmt.Sprintf("[%d]", i)
}

// renderResult lays the analysis out as one table per section.
func renderResult(res *analysis.Result, labels []string, gapBase int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Documents: %d  Vocabulary: %d\n", len(res.TopKeywords), res.VocabSize)
	if len(res.TopKeywords) == 0 {
		return b.String()
	}

	for i, keywords := range res.TopKeywords {
		rows := make([][]string, 0, len(keywords))
		for rank, kw := range keywords {
			rows = append(rows, []string{strconv.Itoa(rank + 1), kw.Term, formatScore(kw.Score)})
		}
		b.WriteString("\n")
		b.WriteString(scoreTable{
			Title:   "Keywords " + docLabel(labels, i),
			Columns: []column{{"#", true}, {"Term", false}, {"Score", true}},
			Rows:    rows,
			Empty:   "no keywords",
		}.render())
		b.WriteString("\n")
	}

	columns := []column{{"", false}}
	for i := range res.Similarity {
		columns = append(columns, column{strconv.Itoa(i), true})
	}
	rows := make([][]string, 0, len(res.Similarity))
	for i, sims := range res.Similarity {
		row := []string{docLabel(labels, i)}
		for _, v := range sims {
			row = append(row, formatScore(v))
		}
		rows = append(rows, row)
	}
	b.WriteString("\n")
	b.WriteString(scoreTable{Title: "Cosine similarity", Columns: columns, Rows: rows}.render())
	b.WriteString("\n")

	for _, rec := range res.Gaps {
		rows := make([][]string, 0, len(rec.Items))
		for _, item := range rec.Items {
			rows = append(rows, []string{item.Term, formatScore(item.Delta), formatScore(item.Base), formatScore(item.Other)})
		}
		title := fmt.Sprintf("Gaps %s vs %s", docLabel(labels, gapBase), docLabel(labels, rec.Vs))
		b.WriteString("\n")
		b.WriteString(scoreTable{
			Title:   title,
			Columns: []column{{"Term", false}, {"Delta", true}, {"Base", true}, {"Other", true}},
			Rows:    rows,
			Empty:   "no gaps above threshold",
		}.render())
		b.WriteString("\n")
	}

	return b.String()
}
