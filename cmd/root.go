package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/embtools/mcudiag/internal/config"
	"github.com/embtools/mcudiag/internal/shell"
	"github.com/embtools/mcudiag/internal/target"
)

var (
	rootDir    string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "mcudiag",
	Short: "Diagnostic console for embedded controller heap snapshots",
	Long: `mcudiag re-creates an embedded controller's on-board diagnostic
console on the host, driven by memory snapshots captured from the
device. Its centerpiece is the heap walker: it reconstructs the
layout of the controller's sequential-chunk allocator from raw
memory alone and reports every chunk with a used/free accounting.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "",
		"directory served as the target filesystem (default: the snapshot's directory)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"device config file (default: <snapshot>.config)")
}

// openTarget loads the snapshot and resolves the sandbox root and
// config paths relative to it when the flags are unset.
func openTarget(path string) (target.Target, *shell.Shell, error) {
	t, err := target.Load(path)
	if err != nil {
		return nil, nil, err
	}

	root := rootDir
	if root == "" {
		root = filepath.Dir(path)
	}
	cfgPath := configFile
	if cfgPath == "" {
		cfgPath = path + ".config"
	}

	sh := shell.New(t, config.NewStore(cfgPath), root)
	return t, sh, nil
}

// completeSnapshotFiles offers *.heap files in the working directory.
func completeSnapshotFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}

	files, _ := os.ReadDir(".")
	var snaps []string
	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(f.Name(), ".heap") {
			snaps = append(snaps, f.Name())
		}
	}
	return snaps, cobra.ShellCompDirectiveNoFileComp
}
