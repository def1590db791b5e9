package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/embtools/mcudiag/internal/heapwalk"
	"github.com/embtools/mcudiag/internal/target"
	"github.com/embtools/mcudiag/utils"
)

var memVerbose bool

var memCmd = &cobra.Command{
	Use:               "mem [snapshot]",
	Short:             "Report heap usage from a snapshot",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeSnapshotFiles,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := target.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Unused Heap: %d bytes\n", t.MaxHeapAddr()-t.HeapTop())
		totals := heapwalk.Report(os.Stdout, t.Memory(), target.Boundary(t), t.FreeListHead(), memVerbose)

		fmt.Fprintf(os.Stdout, "(%s allocated, %s free)\n",
			utils.MemorySize(totals.Used), utils.MemorySize(totals.Free))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(memCmd)

	memCmd.Flags().BoolVarP(&memVerbose, "verbose", "v", false, "print one line per chunk")
}
