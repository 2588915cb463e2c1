package main

import (
	"fmt"
	"io"

	"github.com/aretw0/twotruths/internal/adapters"
	"github.com/aretw0/twotruths/internal/validator"
	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/aretw0/twotruths/pkg/generator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files|dirs...]",
	Short: "Check generator configs",
	Long: `Loads every config, builds its generator and reports the kind and
number of argument sets. Missing or mistyped required fields are errors;
unfilled placeholders and repeated truths are warnings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(viper.GetViper())
		if err != nil {
			return err
		}
		paths, err := inputPaths(args, s)
		if err != nil {
			return err
		}
		configs, err := adapters.NewFileLoader(paths...).Load(cmd.Context())
		if err != nil {
			return err
		}
		return runValidate(cmd.OutOrStdout(), generator.DefaultRegistry(), configs)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate prints one block per config and returns the validation error, if any.
func runValidate(w io.Writer, reg *generator.Registry, configs []domain.GeneratorConfig) error {
	results, err := validator.ValidateConfigs(reg, configs)
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(w, "ok   %s (%s): %d argument sets\n", r.Name(), r.Kind, r.Size)
		} else {
			fmt.Fprintf(w, "FAIL %s\n", r.Name())
		}
		for _, f := range r.Findings {
			fmt.Fprintf(w, "     %s: %s\n", f.Severity, f.Message)
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%d generator configs are valid\n", len(configs))
	return nil
}
