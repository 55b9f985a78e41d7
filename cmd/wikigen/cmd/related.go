package cmd

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	wikierrors "github.com/docsmiths/wikigen/internal/errors"
	"github.com/docsmiths/wikigen/internal/output"
)

func newRelatedCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "related <page-id>",
		Short: "Find pages related to an indexed page",
		Long: `Find the nearest semantic neighbors of an indexed page by
embedding similarity.

Examples:
  wikigen related guides/deployment.md
  wikigen related guides/deployment.md --limit 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx, true)
			if err != nil {
				return err
			}
			defer e.close()

			if _, err := e.pages.GetPage(ctx, args[0]); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return wikierrors.New(wikierrors.ErrCodePageNotFound,
						fmt.Sprintf("page %s is not indexed", args[0]), err).
						WithSuggestion("run 'wikigen index <dir>' first, page IDs are paths relative to the indexed directory")
				}
				return err
			}

			out := output.New(cmd.OutOrStdout())
			results := e.engine.RelatedDocuments(args[0], limit)
			if len(results) == 0 {
				out.Println("No related pages.")
				return nil
			}
			for i, r := range results {
				out.Title(fmt.Sprintf("%d. %s", i+1, r.Document.Metadata.Title))
				out.Muted(fmt.Sprintf("   %s  similarity=%s", r.Document.ID, out.Score(r.Score)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of related pages")

	return cmd
}
