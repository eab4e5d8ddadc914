package magicbench

import "github.com/spf13/cobra"

// showCmd groups commands that display settings.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show settings",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
