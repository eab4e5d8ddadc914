// internal/commands/benchmark.go
package magicbench

import "github.com/spf13/cobra"

// benchmarkCmd groups benchmark-related CLI commands.
var benchmarkCmd = &cobra.Command{
	Use:     "bench",
	Aliases: []string{"benchmark"},
	Short:   "Group commands for running classification benchmarks",
}

func init() {
	rootCmd.AddCommand(benchmarkCmd)
}
