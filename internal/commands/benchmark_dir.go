package magicbench

import (
	"github.com/spf13/cobra"
)

var benchmarkDirCmd = &cobra.Command{
	Use:   "dir <database> <sample-dir> <iterations>",
	Short: "Time classification of every file in a directory",
	Long: `Benchmarks each regular file directly inside the sample directory, writes one
row per file to the text report (see --output) and prints the average and standard
deviation of the per-file means.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		iterations, err := parseIterations(args[2])
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true
		return RunBenchmarkDir(cmd.OutOrStdout(), configOrDefault(), args[0], args[1], iterations)
	},
}

func init() {
	benchmarkCmd.AddCommand(benchmarkDirCmd)
}
