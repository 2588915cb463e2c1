package main

import (
	"github.com/aretw0/twotruths"
	"github.com/aretw0/twotruths/internal/presentation"
	"github.com/aretw0/twotruths/pkg/observability"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var generateCmd = &cobra.Command{
	Use:   "generate [files|dirs...]",
	Short: "Generate one batch of truths and lies",
	Long: `Loads the given generator configs and prints one batch.

Output formats:
- text (default): one "<truth>: <text>" line per statement.
- json: the batch with its id and truth flags.
- markdown: a numbered quiz followed by the answers.`,
	Example: `  twotruths generate examples/ --truths 2 --lies 1
  twotruths generate cubing.yaml --random-order --format markdown`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(viper.GetViper())
		if err != nil {
			return err
		}
		paths, err := inputPaths(args, s)
		if err != nil {
			return err
		}
		format, err := presentation.ParseFormat(s.Generate.Format)
		if err != nil {
			return err
		}

		logger := newLogger(s)
		eng, err := twotruths.New(paths,
			twotruths.WithLogger(logger),
			twotruths.WithLifecycleHooks(observability.LogHooks(logger)),
		)
		if err != nil {
			return err
		}

		batch, err := eng.Generate(cmd.Context(), s.Generate.Request())
		if err != nil {
			return err
		}
		return presentation.NewWriter(cmd.OutOrStdout(), format).WriteBatch(batch)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.IntP("truths", "t", 2, "number of true statements")
	f.IntP("lies", "l", 1, "number of false statements")
	f.Int("max-retries", 10, "attempts per statement before giving up")
	f.Bool("ensure-not-true", true, "reject lies that match a known truth")
	f.Bool("random-order", false, "shuffle instead of sorting")
	f.Uint64("seed", 0, "seed for reproducible output (0 picks one)")
	f.StringP("format", "f", "text", "output format: text, json or markdown")

	_ = viper.BindPFlag("generate.truths", f.Lookup("truths"))
	_ = viper.BindPFlag("generate.lies", f.Lookup("lies"))
	_ = viper.BindPFlag("generate.max_retries", f.Lookup("max-retries"))
	_ = viper.BindPFlag("generate.ensure_not_true", f.Lookup("ensure-not-true"))
	_ = viper.BindPFlag("generate.random_order", f.Lookup("random-order"))
	_ = viper.BindPFlag("generate.seed", f.Lookup("seed"))
	_ = viper.BindPFlag("generate.format", f.Lookup("format"))
}
