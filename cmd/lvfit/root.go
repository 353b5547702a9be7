// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lvfit",
		Short: "Errors-in-all-variables nonlinear least squares",
		Long: `Fit implicit models to data whose every coordinate carries its own,
possibly correlated, uncertainty, and report parameter covariances,
confidence/prediction bands and extreme-value outliers.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every iteration to stderr")

	rootCmd.AddCommand(NewFitCmd())

	return rootCmd
}
