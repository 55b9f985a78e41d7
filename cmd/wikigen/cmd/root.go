// Package cmd provides the CLI commands for wikigen.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/docsmiths/wikigen/internal/logging"
	"github.com/docsmiths/wikigen/pkg/version"
)

var (
	rootDir        string
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the wikigen CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikigen",
		Short: "Hybrid search over wiki documentation",
		Long: `wikigen indexes wiki pages and searches them with hybrid retrieval:
TF-IDF keyword matching fused with semantic embedding similarity.

Run 'wikigen index <dir>' to ingest markdown pages, then
'wikigen search <query>' to search them.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("wikigen version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	cmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		level := "info"
		if debugMode {
			level = "debug"
		}
		cleanup, err := logging.SetupDefault(level)
		if err != nil {
			return err
		}
		loggingCleanup = cleanup
		return nil
	}
	cmd.PersistentPostRun = func(*cobra.Command, []string) {
		if loggingCleanup != nil {
			loggingCleanup()
		}
	}

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newSuggestCmd())
	cmd.AddCommand(newRelatedCmd())
	cmd.AddCommand(newClusterCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
