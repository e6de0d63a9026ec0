package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStopwordsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stopwords",
		Short: "Print the active stopword list",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.engine(cmd)
			if err != nil {
				return err
			}
			words := eng.Stopwords().Sorted()
			if jsonOutput {
				return writeJSON(cmd, words)
			}
			out := cmd.OutOrStdout()
			for _, w := range words {
				fmt.Fprintln(out, w)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as a JSON array")
	return cmd
}
