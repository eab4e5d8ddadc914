package magicbench

import (
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/mwiater/magicbench/internal/appconfig"
	"github.com/mwiater/magicbench/internal/classifier"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fallback := appconfig.Config{
			Debug:      viper.GetBool("debug"),
			Backend:    viper.GetString("backend"),
			Clock:      viper.GetString("clock"),
			MIMEFlags:  viper.GetStringSlice("mimeFlags"),
			ReadLimit:  viper.GetInt("readLimit"),
			OutputPath: viper.GetString("output"),
			ExportPath: viper.GetString("export"),
			LogFile:    viper.GetString("logFile"),
			NoColor:    viper.GetBool("noColor"),
		}
		out := cmd.OutOrStdout()
		if fileOnly, _ := cmd.Flags().GetBool("file"); fileOnly {
			cfg, err := appconfig.Load(cfgFile)
			if err != nil {
				return err
			}
			appconfig.ShowConfig(out, cfg.ConfigPath, &cfg, fallback)
			return nil
		}
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			cfg := GetConfig()
			if cfg == nil {
				cfg = &fallback
			}
			_, _ = pp.Fprintln(out, cfg)
			return nil
		}
		appconfig.ShowConfig(out, viper.ConfigFileUsed(), GetConfig(), fallback)
		fmt.Fprintf(out, "\nAvailable backends: %v\n", classifier.Backends())
		return nil
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)

	showConfigCmd.Flags().Bool("raw", false, "dump the merged configuration struct")
	showConfigCmd.Flags().Bool("file", false, "show the config file alone, without flag or environment overrides")
}
