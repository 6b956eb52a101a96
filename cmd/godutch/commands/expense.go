package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/godutch/internal/calculator"
)

func expenseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and list expenses",
	}
	cmd.AddCommand(expenseAddCmd(a), expenseListCmd(a))
	return cmd
}

func expenseAddCmd(a *app) *cobra.Command {
	var (
		with        []string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add CODE AMOUNT",
		Short: "Record an expense you paid, split equally with --with members",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.login(cmd.Context())
			if err != nil {
				return err
			}
			group, err := a.memberGroup(cmd.Context(), args[0], me.ID)
			if err != nil {
				return err
			}

			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[1])
			}
			splitWith, err := resolveMembers(group.Members, with)
			if err != nil {
				return err
			}

			expense, err := a.ledger.AddExpense(cmd.Context(), group.Code, me.ID, amount, description, splitWith)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s split %d ways: %s each\n",
				formatMoney(expense.Amount, a.cfg.Display.Currency),
				len(expense.SplitWith)+1,
				formatMoney(expense.PerPerson, a.cfg.Display.Currency),
			)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&with, "with", "w", nil, "members to split with (ids or unique id suffixes)")
	cmd.Flags().StringVarP(&description, "desc", "d", "", "what the expense was for")
	return cmd
}

func expenseListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list CODE",
		Short: "List a group's expenses, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.login(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := a.memberGroup(cmd.Context(), args[0], me.ID); err != nil {
				return err
			}
			expenses, err := a.ledger.ListExpenses(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(expenses) == 0 {
				fmt.Fprintln(out, "No expenses yet.")
				return nil
			}

			currency := a.cfg.Display.Currency
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tPAID BY\tAMOUNT\tEACH\tSPLIT WITH\tDESCRIPTION")
			for _, e := range expenses {
				names := make([]string, len(e.SplitWith))
				for i, uid := range e.SplitWith {
					names[i] = displayName(uid, me.ID)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					time.Unix(e.CreatedAt, 0).Format(time.DateOnly),
					displayName(e.Payer, me.ID),
					formatMoney(e.Amount, currency),
					formatMoney(e.PerPerson, currency),
					strings.Join(names, ", "),
					e.Description,
				)
			}
			return w.Flush()
		},
	}
}

func balancesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balances CODE",
		Short: "Show who owes whom in a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.login(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := a.memberGroup(cmd.Context(), args[0], me.ID); err != nil {
				return err
			}
			balances, err := a.ledger.Balances(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			currency := a.cfg.Display.Currency
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MEMBER\tBALANCE\t")
			for _, b := range balances {
				fmt.Fprintf(w, "%s\t%s\t%s\n", displayName(b.Member, me.ID), formatMoney(b.Net, currency), standing(b.Net))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			transfers := calculator.SuggestTransfers(balances)
			if len(transfers) == 0 {
				fmt.Fprintln(out, "\nAll settled up.")
				return nil
			}
			fmt.Fprintln(out, "\nSuggested transfers:")
			for _, t := range transfers {
				fmt.Fprintf(out, "  %s -> %s: %s\n", displayName(t.From, me.ID), displayName(t.To, me.ID), formatMoney(t.Amount, currency))
			}
			return nil
		},
	}
}

func standing(net decimal.Decimal) string {
	switch net.Sign() {
	case 1:
		return "is owed"
	case -1:
		return "owes"
	default:
		return "settled"
	}
}
