// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ludquiz-hash/visiocaret-sub000/pkg/garage"
)

var garageCmd = &cobra.Command{
	Use:   "garage",
	Short: "Inspect and switch the active garage",
}

var currentGarageCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the active garage of the user, provisioning one on first use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		active, err := getClient().Current(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get active garage: %w", err)
		}

		printActiveGarage(cmd.OutOrStdout(), active)
		return nil
	},
}

var selectGarageCmd = &cobra.Command{
	Use:   "select [garage-id]",
	Short: "Make one of the user's garages the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		active, err := getClient().Select(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to select garage: %w", err)
		}

		printActiveGarage(cmd.OutOrStdout(), active)
		return nil
	},
}

func printActiveGarage(out io.Writer, active *garage.ActiveGarage) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPLAN\tROLE\tSYNCED")
	if active.Garage != nil {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n", active.Garage.ID, active.Garage.Name, active.Garage.Plan, active.Role, active.Synced)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(garageCmd)
	garageCmd.AddCommand(currentGarageCmd)
	garageCmd.AddCommand(selectGarageCmd)
}
