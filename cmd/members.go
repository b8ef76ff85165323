// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

var inviteName string

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "Manage the members of the active garage",
}

var listMembersCmd = &cobra.Command{
	Use:   "list",
	Short: "List active members of the active garage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		members, err := getClient().ListMembers(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list members: %w", err)
		}

		printMembers(cmd.OutOrStdout(), members...)
		return nil
	},
}

var inviteMemberCmd = &cobra.Command{
	Use:   "invite [email] [role]",
	Short: "Invite a user to the active garage as admin or staff",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		invitation, err := getClient().Invite(cmd.Context(), args[0], inviteName, types.Role(args[1]))
		if err != nil {
			return fmt.Errorf("failed to invite member: %w", err)
		}

		cmd.Printf("Member invited: %s (Role: %s)\n", invitation.Membership.UserEmail, invitation.Membership.Role)
		if invitation.Link != "" {
			cmd.Printf("Link: %s\n", invitation.Link)
		}
		if invitation.Code != "" {
			cmd.Printf("Code: %s\n", invitation.Code)
		}
		return nil
	},
}

type membershipMutation func(*garageClient, context.Context, string) (*types.Membership, error)

func mutationCmd(use, short, verb string, mutate membershipMutation) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [membership-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			membership, err := mutate(getClient(), cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to %s member: %w", use, err)
			}

			cmd.Printf("Member %s: %s\n", verb, membership.UserEmail)
			printMembers(cmd.OutOrStdout(), membership)
			return nil
		},
	}
}

func printMembers(out io.Writer, members ...*types.Membership) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tACTIVE")
	for _, m := range members {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n", m.ID, m.UserEmail, m.UserName, m.Role, m.Active)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(membersCmd)
	membersCmd.AddCommand(listMembersCmd)
	membersCmd.AddCommand(inviteMemberCmd)
	membersCmd.AddCommand(mutationCmd("promote", "Promote a staff member to admin", "promoted", (*garageClient).Promote))
	membersCmd.AddCommand(mutationCmd("demote", "Demote an admin to staff", "demoted", (*garageClient).Demote))
	membersCmd.AddCommand(mutationCmd("remove", "Deactivate a membership", "removed", (*garageClient).Remove))

	inviteMemberCmd.Flags().StringVar(&inviteName, "name", "", "Display name used when the identity has to be created")
}
