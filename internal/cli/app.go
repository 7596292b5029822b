package cli

import (
	"context"
	"fmt"
	"io"

	"finzen/internal/api"
	"finzen/internal/core"
	"finzen/internal/services"
	"finzen/internal/session"
)

// App wires the command surface to the backend client, the session,
// and the goal and dashboard services.
type App struct {
	client    *api.Client
	session   *session.Session
	goals     *services.GoalService
	dashboard *services.DashboardService
	out       io.Writer
	in        io.Reader
}

func NewApp(client *api.Client, sess *session.Session, goals *services.GoalService, out io.Writer, in io.Reader) *App {
	return &App{
		client:    client,
		session:   sess,
		goals:     goals,
		dashboard: services.NewDashboardService(backendAPI{client}),
		out:       out,
		in:        in,
	}
}

// Run dispatches one subcommand. The returned error is already
// user-presentable; callers only decide the exit code.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "register":
		return a.runRegister(ctx, args[1:])
	case "login":
		return a.runLogin(ctx, args[1:])
	case "logout":
		return a.runLogout(ctx)
	case "whoami":
		return a.runWhoami(ctx)
	case "dashboard":
		return a.runDashboard(ctx)
	case "goals":
		return a.runGoals(ctx, args[1:])
	case "accounts":
		return a.runAccounts(ctx, args[1:])
	case "help", "-h", "--help":
		a.printUsage()
		return nil
	default:
		a.printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) printUsage() {
	fmt.Fprint(a.out, `Usage: finzen <command> [flags]

Commands:
  register    create an account on the backend
  login       authenticate and store the session token
  logout      end the session and clear the stored token
  whoami      show the authenticated user
  dashboard   balances, monthly flow, goals and upcoming charges
  goals       manage saving goals (list, add, edit, rm, contribute, achieve)
  accounts    list accounts
`)
}

// requireUser hydrates the session and returns the user, or a
// login-hint error when there is no valid token.
func (a *App) requireUser(ctx context.Context) (api.User, error) {
	user, err := a.session.Hydrate(ctx)
	if err != nil {
		return api.User{}, fmt.Errorf("not logged in: run `finzen login` first")
	}
	return user, nil
}

// backendAPI adapts the concrete client to the dashboard service.
type backendAPI struct {
	c *api.Client
}

func (b backendAPI) ListAccounts(ctx context.Context) ([]api.Account, error) {
	return b.c.Accounts.List(ctx)
}

func (b backendAPI) ListTransactions(ctx context.Context, filter api.TransactionFilter) ([]api.Transaction, error) {
	return b.c.Transactions.List(ctx, filter)
}

func (b backendAPI) ListGoals(ctx context.Context) ([]core.Goal, error) {
	return b.c.Goals.List(ctx)
}

func (b backendAPI) GetMonthBudgets(ctx context.Context, year, month int) ([]api.Budget, error) {
	return b.c.Budgets.GetMonth(ctx, year, month)
}

func (b backendAPI) ListRecurring(ctx context.Context) ([]api.RecurringExpense, error) {
	return b.c.Recurring.List(ctx)
}
