// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package main

import (
	"github.com/spf13/cobra"

	"github.com/satdripple/satdripple/internal/satd/config"
)

var (
	configPath string
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "satdripple",
		Short: "Detect Self-Admitted Technical Debt and rank it by impact ripple",
		Long: `satdripple scans a codebase for self-admitted technical debt markers,
discovers relationships between debt instances, groups them into chains,
and ranks them by how far their impact would ripple through the codebase.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML configuration file")
	rootCmd.AddCommand(scanCmd, scenarioCmd, rankCmd)
}
