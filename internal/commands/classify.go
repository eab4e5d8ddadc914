package magicbench

import (
	"github.com/spf13/cobra"
)

// classifyCmd classifies files once without timing them.
var classifyCmd = &cobra.Command{
	Use:   "classify <database> <file>...",
	Short: "Print the classification of one or more files",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return ClassifyFiles(cmd.OutOrStdout(), configOrDefault(), args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
