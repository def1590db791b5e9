package cmd

import (
	"github.com/spf13/cobra"

	"github.com/embtools/mcudiag/internal/console"
)

var consoleCmd = &cobra.Command{
	Use:               "console [snapshot]",
	Short:             "Open the interactive diagnostic console",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeSnapshotFiles,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, sh, err := openTarget(args[0])
		if err != nil {
			return err
		}
		return console.Start(t, sh)
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
