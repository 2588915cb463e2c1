package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/twotruths"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of twotruths",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "twotruths version %s\n", strings.TrimSpace(twotruths.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
