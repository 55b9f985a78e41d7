package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docsmiths/wikigen/configs"
	"github.com/docsmiths/wikigen/internal/config"
	"github.com/docsmiths/wikigen/internal/output"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .wikigen.yaml configuration",
		Long: `Write an annotated .wikigen.yaml to the project root.

The generated file documents every setting with its default value.
Existing configuration is left untouched unless --force is given.

Examples:
  wikigen init
  wikigen init --root ./docs --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.New(cmd.OutOrStdout())
			path := filepath.Join(rootDir, config.ConfigFileName)

			if _, err := os.Stat(path); err == nil && !force {
				out.Printf("%s already exists, use --force to overwrite\n", path)
				return nil
			}

			if err := os.WriteFile(path, []byte(configs.ConfigTemplate), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			out.Successf("Wrote %s\n", path)
			out.Muted("Edit it to taste, then run 'wikigen index <dir>'.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}
