package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:               "exec [snapshot] [command]...",
	Short:             "Run one console command against a snapshot",
	Long:              `Runs a single console line non-interactively, for scripting: mcudiag exec capture.heap mem -v`,
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completeSnapshotFiles,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sh, err := openTarget(args[0])
		if err != nil {
			return err
		}

		line := strings.Join(args[1:], " ")
		return sh.Dispatch(line, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(execCmd)

	// flags after the snapshot belong to the console command
	execCmd.Flags().SetInterspersed(false)
}
