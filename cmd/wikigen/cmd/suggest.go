package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/docsmiths/wikigen/internal/output"
)

func newSuggestCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest <partial-query>",
		Short: "Suggest completions for a partial query",
		Long: `Suggest index vocabulary terms that complete the last word of a
partial query.

Examples:
  wikigen suggest "depl"
  wikigen suggest "how to conf" --limit 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer e.close()

			out := output.New(cmd.OutOrStdout())
			suggestions := e.engine.Suggestions(strings.Join(args, " "), limit)
			if len(suggestions) == 0 {
				out.Println("No suggestions.")
				return nil
			}
			for _, s := range suggestions {
				out.Println(s)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of suggestions")

	return cmd
}
