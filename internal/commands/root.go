// internal/commands/root.go
package magicbench

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mwiater/magicbench/internal/appconfig"
	"github.com/mwiater/magicbench/internal/logging"
	"github.com/mwiater/magicbench/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "magicbench",
	Short: "magicbench: latency benchmarks for file-type detection",
	Long: `magicbench opens a classification session, loads a signature database and
times repeated classification calls against sample files, reporting the mean,
variance and standard deviation of each call.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(cmd.Flags().Changed("config")); err != nil {
			return err
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath(), currentConfig.Debug); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	rootCmd.SilenceErrors = true
	err := rootCmd.Execute()
	_ = logging.Close()
	if err != nil {
		report.NewConsole(os.Stderr, viper.GetBool("noColor")).Failure(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "log every timed iteration to stderr")
	rootCmd.PersistentFlags().StringP("backend", "b", "", "classifier backend (mimetype, libmagic)")
	rootCmd.PersistentFlags().String("clock", "", "timing clock: process (cpu time) or wall")
	rootCmd.PersistentFlags().StringSlice("mimeFlags", nil, "session flags: none, mime_type, mime_encoding, mime, continue")
	rootCmd.PersistentFlags().Int("readLimit", 0, "bytes of each file the classifier may inspect (0 = backend default)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "text report path for directory runs (default \"output\")")
	rootCmd.PersistentFlags().String("export", "", "write the run as JSON to this path (\"auto\" picks a name)")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().Bool("noColor", false, "disable colored console output")
	rootCmd.PersistentFlags().Bool("keepSamples", false, "include every sample in the JSON export")

	for _, name := range []string{"debug", "backend", "clock", "mimeFlags", "readLimit", "output", "export", "logFile", "noColor", "keepSamples"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	viper.SetEnvPrefix("MAGICBENCH")
	viper.AutomaticEnv()
}

// ensureConfigLoaded reads the config file. A missing file is only an error
// when it was named explicitly on the command line.
func ensureConfigLoaded(explicit bool) error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
