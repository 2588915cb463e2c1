package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/twotruths/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "twotruths",
	Short: "Generate truths and lies for quiz games",
	Long: `twotruths builds sets of true and false statements from templated
generator configs, for games like "two truths and a lie".

Each config file names a generator kind, a template with {field}
placeholders and a list of argument sets. Truths render an argument set as
is; lies perturb it.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.twotruths/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringSliceP("input", "i", nil, "generator config files or directories")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("inputs", rootCmd.PersistentFlags().Lookup("input"))
	_ = viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	setDefaults(viper.GetViper())
}

// initConfig reads the config file and TWOTRUTHS_* environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".twotruths"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TWOTRUTHS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// newLogger builds the process logger from the effective settings.
func newLogger(s Settings) *slog.Logger {
	level, err := logging.ParseLevel(s.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if s.Verbose {
		level = slog.LevelDebug
	}
	format := logging.FormatText
	if s.LogFormat == string(logging.FormatJSON) {
		format = logging.FormatJSON
	}
	logger := logging.NewWriter(os.Stderr, level, format)
	slog.SetDefault(logger)
	return logger
}

// inputPaths prefers positional arguments over configured inputs.
func inputPaths(args []string, s Settings) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(s.Inputs) > 0 {
		return s.Inputs, nil
	}
	return nil, fmt.Errorf("no generator configs given: pass files or directories, or set --input")
}
