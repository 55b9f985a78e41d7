package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/docsmiths/wikigen/internal/output"
)

func newClusterCmd() *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Group indexed pages into topic clusters",
		Long: `Partition indexed pages into k clusters by embedding similarity.
Assignments are recomputed on each run.

Examples:
  wikigen cluster
  wikigen cluster -k 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if k < 1 {
				return fmt.Errorf("cluster count must be at least 1, got %d", k)
			}

			e, err := openEnv(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer e.close()

			out := output.New(cmd.OutOrStdout())
			clusters := e.engine.ClusterDocuments(k)
			if len(clusters) == 0 {
				out.Println("No embedded pages to cluster.")
				return nil
			}

			ids := make([]int, 0, len(clusters))
			for id := range clusters {
				ids = append(ids, id)
			}
			sort.Ints(ids)

			for _, id := range ids {
				members := clusters[id]
				out.Title(fmt.Sprintf("Cluster %d (%d pages)", id, len(members)))
				sort.Strings(members)
				for _, m := range members {
					out.Printf("   %s\n", m)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "clusters", "k", 5, "Number of clusters")

	return cmd
}
