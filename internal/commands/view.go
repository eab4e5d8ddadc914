package magicbench

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/magicbench/internal/benchmark"
	"github.com/mwiater/magicbench/internal/viewer"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <results.json>",
	Short: "Browse a saved benchmark run interactively",
	Long:  `Loads a run written with --export and shows its per-file statistics in a scrollable table.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		run, err := benchmark.ReadRun(args[0])
		if err != nil {
			return err
		}
		return viewer.Run(run, tea.WithAltScreen(), tea.WithOutput(cmd.OutOrStdout()))
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
