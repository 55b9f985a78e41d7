package cmd

import (
	"github.com/spf13/cobra"

	"github.com/docsmiths/wikigen/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.Info().String())
		},
	}
}
