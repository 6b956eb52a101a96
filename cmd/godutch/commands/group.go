package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func groupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Create, join and manage groups",
	}
	cmd.AddCommand(
		groupCreateCmd(a),
		groupJoinCmd(a),
		groupListCmd(a),
		groupShowCmd(a),
		groupDeleteCmd(a),
	)
	return cmd
}

func groupCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a group and print its code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.login(cmd.Context())
			if err != nil {
				return err
			}
			group, err := a.ledger.CreateGroup(cmd.Context(), me.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created group %s. Share this code so others can join.\n", group.Code)
			return nil
		},
	}
}

func groupJoinCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "join CODE",
		Short: "Join a group by code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.login(cmd.Context())
			if err != nil {
				return err
			}
			group, err := a.ledger.JoinGroup(cmd.Context(), args[0], me.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Joined group %s (%d members)\n", group.Code, len(group.Members))
			return nil
		},
	}
}

func groupListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the groups you belong to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.login(cmd.Context())
			if err != nil {
				return err
			}
			codes, err := a.ledger.ListGroupsFor(cmd.Context(), me.ID)
			if err != nil {
				return err
			}
			if len(codes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "You are not in any group yet.")
				return nil
			}
			for _, code := range codes {
				fmt.Fprintln(cmd.OutOrStdout(), code)
			}
			return nil
		},
	}
}

func groupShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show CODE",
		Short: "Show a group's members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.login(cmd.Context())
			if err != nil {
				return err
			}
			group, err := a.memberGroup(cmd.Context(), args[0], me.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Group %s, %d expenses\n", group.Code, len(group.Expenses))
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MEMBER\tID\t")
			for _, m := range group.Members {
				role := ""
				if m == group.Creator {
					role = "creator"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", displayName(m, me.ID), m, role)
			}
			return w.Flush()
		},
	}
}

func groupDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete CODE",
		Short: "Permanently delete a group you created",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.login(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.ledger.DeleteGroup(cmd.Context(), args[0], me.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted group %s\n", args[0])
			return nil
		},
	}
}
