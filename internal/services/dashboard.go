package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"finzen/internal/api"
	"finzen/internal/core"
	"finzen/internal/goal"
)

// DashboardAPI is the slice of the backend client the dashboard needs.
type DashboardAPI interface {
	ListAccounts(ctx context.Context) ([]api.Account, error)
	ListTransactions(ctx context.Context, filter api.TransactionFilter) ([]api.Transaction, error)
	ListGoals(ctx context.Context) ([]core.Goal, error)
	GetMonthBudgets(ctx context.Context, year, month int) ([]api.Budget, error)
	ListRecurring(ctx context.Context) ([]api.RecurringExpense, error)
}

// Summary is the aggregated home screen: balances, the current month's
// cash flow, goal progress, budget status, and upcoming charges.
type Summary struct {
	TotalAssets  core.Money
	TotalDebt    core.Money
	NetBalance   core.Money
	MonthIncome  core.Money
	MonthExpense core.Money
	Accounts     []api.Account
	Goals        []GoalView
	Budgets      []api.Budget
	Upcoming     []api.RecurringExpense
}

// DashboardService builds the summary with one concurrent fetch per
// resource.
type DashboardService struct {
	api DashboardAPI
}

func NewDashboardService(api DashboardAPI) *DashboardService {
	return &DashboardService{api: api}
}

// Load fetches all dashboard resources concurrently and reduces them.
// asOf picks the month window and the horizon for upcoming charges.
func (s *DashboardService) Load(ctx context.Context, asOf time.Time) (Summary, error) {
	monthStart := core.NewDate(asOf.Year(), int(asOf.Month()), 1)
	monthEnd := monthStart.AddMonths(1).AddDays(-1)

	var (
		accounts     []api.Account
		transactions []api.Transaction
		goals        []core.Goal
		budgets      []api.Budget
		recurring    []api.RecurringExpense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.api.ListAccounts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.api.ListTransactions(gctx, api.TransactionFilter{
			From: monthStart,
			To:   monthEnd,
		})
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.api.ListGoals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.api.GetMonthBudgets(gctx, asOf.Year(), int(asOf.Month()))
		return err
	})
	g.Go(func() error {
		var err error
		recurring, err = s.api.ListRecurring(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("load dashboard: %w", err)
	}

	summary := Summary{
		Accounts: accounts,
		Budgets:  budgets,
	}

	for _, a := range accounts {
		switch a.Type {
		case api.AccountDebit:
			summary.TotalAssets.Cents += a.Balance.Cents
		case api.AccountCredit:
			summary.TotalDebt.Cents += a.Balance.Cents
		}
	}
	summary.NetBalance.Cents = summary.TotalAssets.Cents - summary.TotalDebt.Cents

	for _, t := range transactions {
		switch t.Type {
		case api.TransactionIncome:
			summary.MonthIncome.Cents += t.Amount.Cents
		case api.TransactionExpense:
			summary.MonthExpense.Cents += t.Amount.Cents
		}
	}

	summary.Goals = make([]GoalView, 0, len(goals))
	for _, gl := range goals {
		view := GoalView{Goal: gl}
		if p, err := goal.ComputeProgress(gl); err == nil {
			view.Progress = p
		}
		summary.Goals = append(summary.Goals, view)
	}

	summary.Upcoming = upcomingCharges(recurring, asOf, 7)

	return summary, nil
}

// upcomingCharges keeps active recurring expenses due within the next
// horizonDays days, inclusive of today.
func upcomingCharges(recurring []api.RecurringExpense, asOf time.Time, horizonDays int) []api.RecurringExpense {
	today := core.DateOf(asOf)
	limit := today.AddDays(horizonDays)

	var out []api.RecurringExpense
	for _, r := range recurring {
		if !r.IsActive {
			continue
		}
		if r.NextDate.Before(today.Time) || r.NextDate.After(limit.Time) {
			continue
		}
		out = append(out, r)
	}
	return out
}
