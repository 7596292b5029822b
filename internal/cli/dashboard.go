package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"finzen/internal/api"
	"finzen/internal/core"
)

func (a *App) runDashboard(ctx context.Context) error {
	user, err := a.requireUser(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	summary, err := a.dashboard.Load(ctx, now)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err, "could not load the dashboard"))
	}

	fmt.Fprintf(a.out, "%s - %s\n\n", user.Name, now.Format("January 2006"))
	fmt.Fprintf(a.out, "Net balance:  %s\n", summary.NetBalance)
	fmt.Fprintf(a.out, "Assets:       %s\n", summary.TotalAssets)
	fmt.Fprintf(a.out, "Debt:         %s\n", summary.TotalDebt)
	fmt.Fprintf(a.out, "This month:   +%s / -%s\n", summary.MonthIncome, summary.MonthExpense)

	if len(summary.Goals) > 0 {
		fmt.Fprintln(a.out, "\nGoals:")
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		for _, v := range summary.Goals {
			status := fmt.Sprintf("%.1f%%", v.Progress.Percent)
			if v.Goal.Status == core.StatusAchieved {
				status = "achieved"
			}
			fmt.Fprintf(w, "  %s\t%s / %s\t%s\n",
				v.Goal.Name, v.Goal.CurrentAmount, v.Goal.TargetAmount, status)
		}
		w.Flush()
	}

	if len(summary.Budgets) > 0 {
		fmt.Fprintln(a.out, "\nBudgets:")
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		for _, b := range summary.Budgets {
			fmt.Fprintf(w, "  category %d\t%s spent of %s\n",
				b.CategoryID, b.Spent, b.LimitAmount)
		}
		w.Flush()
	}

	if len(summary.Upcoming) > 0 {
		fmt.Fprintln(a.out, "\nUpcoming charges:")
		w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		for _, r := range summary.Upcoming {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", r.NextDate, r.Name, r.Amount)
		}
		w.Flush()
	}

	return nil
}

func (a *App) runAccounts(ctx context.Context, args []string) error {
	if _, err := a.requireUser(ctx); err != nil {
		return err
	}
	if len(args) > 0 && args[0] != "list" {
		return fmt.Errorf("unknown accounts subcommand %q", args[0])
	}

	accounts, err := a.client.Accounts.List(ctx)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err, "could not load accounts"))
	}
	if len(accounts) == 0 {
		fmt.Fprintln(a.out, "No accounts yet.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tBALANCE")
	for _, acc := range accounts {
		kind := string(acc.Type)
		if acc.Subtype != "" {
			kind += "/" + acc.Subtype
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", acc.ID, acc.Name, kind, acc.Balance)
	}
	return w.Flush()
}
