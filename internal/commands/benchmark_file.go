package magicbench

import (
	"github.com/spf13/cobra"
)

var benchmarkFileCmd = &cobra.Command{
	Use:   "file <database> <iterations>",
	Short: "Time repeated classification of a single file",
	Long: `Opens a session, loads the signature database and classifies --target the
given number of times, printing the mean, variance and standard deviation of the
per-call time. Use "builtin" as the database to rely on the backend's own signatures.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		iterations, err := parseIterations(args[1])
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true
		target, _ := cmd.Flags().GetString("target")
		return RunBenchmarkFile(cmd.OutOrStdout(), configOrDefault(), args[0], target, iterations)
	},
}

func init() {
	benchmarkCmd.AddCommand(benchmarkFileCmd)

	benchmarkFileCmd.Flags().StringP("target", "t", "test.pdf", "file to classify")
}
