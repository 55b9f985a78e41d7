package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	wikierrors "github.com/docsmiths/wikigen/internal/errors"
	"github.com/docsmiths/wikigen/internal/output"
	"github.com/docsmiths/wikigen/internal/search"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit          int
	threshold      float64
	highlights     bool
	keywordWeight  float64
	semanticWeight float64
	filters        []string
	format         string
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search indexed wiki pages",
		Long: `Search indexed wiki pages with hybrid retrieval: TF-IDF keyword
matching fused with semantic embedding similarity by weighted score
combination.

Filters use field:op:value, where op is one of
eq, ne, in, nin, gt, lt, gte, lte, contains.

Examples:
  wikigen search "deployment checklist"
  wikigen search "auth" --limit 5 --highlights
  wikigen search "api" --filter metadata.category:eq:guides
  wikigen search "release" --keyword-weight 1 --semantic-weight 0`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", 0, "Minimum fused score (0 disables)")
	cmd.Flags().BoolVar(&opts.highlights, "highlights", false, "Include highlighted snippets")
	cmd.Flags().Float64Var(&opts.keywordWeight, "keyword-weight", 0, "Weight for keyword matching")
	cmd.Flags().Float64Var(&opts.semanticWeight, "semantic-weight", 0, "Weight for semantic similarity")
	cmd.Flags().StringSliceVar(&opts.filters, "filter", nil, "Metadata filter field:op:value (repeatable)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, query string, opts searchOptions) error {
	filters, err := parseFilters(opts.filters)
	if err != nil {
		return wikierrors.New(wikierrors.ErrCodeInvalidFilter, err.Error(), err).
			WithSuggestion("filters take the form field:op:value, e.g. metadata.category:eq:guides")
	}

	e, err := openEnv(ctx, true)
	if err != nil {
		return err
	}
	defer e.close()

	searchOpts := search.SearchOptions{
		MaxResults:        opts.limit,
		Threshold:         opts.threshold,
		IncludeHighlights: opts.highlights,
		KeywordWeight:     opts.keywordWeight,
		SemanticWeight:    opts.semanticWeight,
		Filters:           filters,
	}
	if searchOpts.MaxResults <= 0 {
		searchOpts.MaxResults = e.cfg.Search.MaxResults
	}
	if searchOpts.KeywordWeight == 0 && searchOpts.SemanticWeight == 0 {
		searchOpts.KeywordWeight = e.cfg.Search.KeywordWeight
		searchOpts.SemanticWeight = e.cfg.Search.SemanticWeight
	}
	if searchOpts.Threshold == 0 {
		searchOpts.Threshold = e.cfg.Search.Threshold
	}

	results, err := e.engine.Search(ctx, query, searchOpts)
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())
	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		out.Println("No results.")
		return nil
	}
	for i, r := range results {
		out.Title(fmt.Sprintf("%d. %s", i+1, r.Document.Metadata.Title))
		out.Muted(fmt.Sprintf("   %s  score=%s  type=%s",
			r.Document.ID, out.Score(r.Score), r.Type))
		for _, h := range r.Highlights {
			out.Printf("   %s\n", strings.ReplaceAll(h.Snippet, "\n", " "))
		}
	}
	return nil
}

// parseFilters converts field:op:value flags into search filters. The in
// and nin operators take comma-separated lists; numeric values are passed
// through as numbers.
func parseFilters(specs []string) ([]search.Filter, error) {
	filters := make([]search.Filter, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid filter %q: expected field:op:value", spec)
		}

		op := search.FilterOp(parts[1])
		var value any
		switch op {
		case search.OpIn, search.OpNin:
			value = strings.Split(parts[2], ",")
		case search.OpEq, search.OpNe, search.OpGt, search.OpLt, search.OpGte, search.OpLte, search.OpContains:
			if f, err := strconv.ParseFloat(parts[2], 64); err == nil {
				value = f
			} else {
				value = parts[2]
			}
		default:
			return nil, fmt.Errorf("invalid filter %q: unknown operator %q", spec, parts[1])
		}

		filters = append(filters, search.Filter{Field: parts[0], Op: op, Value: value})
	}
	return filters, nil
}
