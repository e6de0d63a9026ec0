package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knowledge-engine/textgap/internal/engine"
	"github.com/knowledge-engine/textgap/internal/ingest"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var texts []string
	var urls []string
	var topN, gapBase, gapTop int
	var gapMinDelta float64
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Compare up to the configured number of documents",
		Long: "Compare documents given as inline --text values, local files (.txt, .md, .html, .pdf)\n" +
			"and --url sources, in that order. Sources beyond the configured cap are ignored.",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.engine(cmd)
			if err != nil {
				return err
			}

			labels := make([]string, 0, len(texts)+len(args)+len(urls))
			docs := make([]string, 0, len(texts)+len(args))
			for i, text := range texts {
				docs = append(docs, text)
				labels = append(labels, fmt.Sprintf("text %d", i+1))
			}
			for _, path := range args {
				doc, err := ingest.ParseFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				docs = append(docs, doc.Text)
				labels = append(labels, doc.Title)
			}
			labels = append(labels, urls...)

			req := engine.Request{Texts: docs, URLs: urls}
			flags := cmd.Flags()
			if flags.Changed("top-n") {
				req.TopN = &topN
			}
			if flags.Changed("gap-base") {
				req.GapBase = &gapBase
			}
			if flags.Changed("gap-top") {
				req.GapTop = &gapTop
			}
			if flags.Changed("gap-min-delta") {
				if gapMinDelta < 0 {
					return fmt.Errorf("--gap-min-delta must not be negative")
				}
				req.GapMinDelta = &gapMinDelta
			}

			result, err := eng.Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderResult(result, labels, eng.Options(req).GapBase))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&texts, "text", "t", nil, "Inline document text (repeatable)")
	cmd.Flags().StringArrayVarP(&urls, "url", "u", nil, "Document URL to fetch (repeatable)")
	cmd.Flags().IntVar(&topN, "top-n", 0, "Keywords per document (default from config)")
	cmd.Flags().IntVar(&gapBase, "gap-base", 0, "Index of the base document for gap analysis")
	cmd.Flags().IntVar(&gapTop, "gap-top", 0, "Gap terms per comparison (default from config)")
	cmd.Flags().Float64Var(&gapMinDelta, "gap-min-delta", 0, "Minimum weight difference for a gap term (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the raw result as JSON")

	return cmd
}
