package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"finzen/internal/api"
	"finzen/internal/core"
	"finzen/internal/goal"
)

func (a *App) runGoals(ctx context.Context, args []string) error {
	if _, err := a.requireUser(ctx); err != nil {
		return err
	}

	if len(args) == 0 {
		return a.goalsList(ctx)
	}
	switch args[0] {
	case "list":
		return a.goalsList(ctx)
	case "add":
		return a.goalsAdd(ctx, args[1:])
	case "edit":
		return a.goalsEdit(ctx, args[1:])
	case "rm":
		return a.goalsRemove(ctx, args[1:])
	case "contribute":
		return a.goalsContribute(ctx, args[1:])
	case "achieve":
		return a.goalsAchieve(ctx, args[1:])
	default:
		return fmt.Errorf("unknown goals subcommand %q", args[0])
	}
}

func (a *App) goalsList(ctx context.Context) error {
	views, err := a.goals.Goals(ctx)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err, "could not load goals"))
	}
	if len(views) == 0 {
		fmt.Fprintln(a.out, "No goals yet. Create one with `finzen goals add`.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSAVED\tTARGET\tPROGRESS\tETA")
	for _, v := range views {
		eta := "-"
		if v.Goal.Status == core.StatusAchieved {
			eta = "achieved"
		} else if v.Estimate != nil {
			eta = v.Estimate.Date.String()
		}
		progress := fmt.Sprintf("%.1f%%", v.Progress.Percent)
		if v.Progress.Overfunded {
			progress += " (over)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			v.Goal.ID, v.Goal.Name,
			v.Goal.CurrentAmount, v.Goal.TargetAmount,
			progress, eta)
	}
	return w.Flush()
}

func (a *App) goalsAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("goals add", flag.ContinueOnError)
	fs.SetOutput(a.out)
	name := fs.String("name", "", "goal name")
	desc := fs.String("desc", "", "description")
	target := fs.String("target", "", "target amount, e.g. 1000000 or 999.50")
	quota := fs.String("quota", "", "planned contribution per period (optional)")
	freq := fs.String("freq", "monthly", "quota frequency: daily, weekly, biweekly, monthly")
	color := fs.String("color", "", "display color, e.g. #6366f1")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := core.NewGoalForm()
	form.Name = *name
	form.Description = *desc
	if *freq != "" {
		form.Frequency = core.Frequency(*freq)
	}
	if *color != "" {
		form.Color = *color
	}
	var err error
	if form.Target, err = parseAmountFlag(*target, "target"); err != nil {
		return err
	}
	if *quota != "" {
		if form.Quota, err = parseAmountFlag(*quota, "quota"); err != nil {
			return err
		}
	}

	created, err := a.goals.CreateGoal(ctx, form)
	if err != nil {
		return goalActionError(err, "could not create the goal")
	}
	fmt.Fprintf(a.out, "Created goal %d %q (target %s)\n", created.ID, created.Name, created.TargetAmount)
	return nil
}

func (a *App) goalsEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("goals edit", flag.ContinueOnError)
	fs.SetOutput(a.out)
	id := fs.Int64("id", 0, "goal id")
	name := fs.String("name", "", "goal name")
	desc := fs.String("desc", "", "description")
	target := fs.String("target", "", "target amount")
	quota := fs.String("quota", "", "planned contribution per period")
	freq := fs.String("freq", "", "quota frequency")
	color := fs.String("color", "", "display color")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("goals edit: -id is required")
	}

	current, err := a.findGoal(ctx, *id)
	if err != nil {
		return err
	}

	// Start from the current state so unset flags keep their values.
	form := core.GoalForm{
		Name:        current.Name,
		Description: current.Description,
		Target:      current.TargetAmount,
		Quota:       current.QuotaAmount,
		Frequency:   current.Frequency,
		Color:       current.Color,
	}
	if form.Frequency == "" {
		form.Frequency = core.Monthly
	}
	if *name != "" {
		form.Name = *name
	}
	if *desc != "" {
		form.Description = *desc
	}
	if *target != "" {
		if form.Target, err = parseAmountFlag(*target, "target"); err != nil {
			return err
		}
	}
	if *quota != "" {
		if form.Quota, err = parseAmountFlag(*quota, "quota"); err != nil {
			return err
		}
	}
	if *freq != "" {
		form.Frequency = core.Frequency(*freq)
	}
	if *color != "" {
		form.Color = *color
	}

	updated, err := a.goals.UpdateGoal(ctx, *id, form)
	if err != nil {
		return goalActionError(err, "could not update the goal")
	}
	fmt.Fprintf(a.out, "Updated goal %d %q\n", updated.ID, updated.Name)
	return nil
}

func (a *App) goalsRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("goals rm", flag.ContinueOnError)
	fs.SetOutput(a.out)
	id := fs.Int64("id", 0, "goal id")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("goals rm: -id is required")
	}

	g, err := a.findGoal(ctx, *id)
	if err != nil {
		return err
	}

	if !*yes {
		prompt := fmt.Sprintf("Delete goal %q and all its contributions? [y/N] ", g.Name)
		if !a.confirm(prompt) {
			fmt.Fprintln(a.out, "Aborted.")
			return nil
		}
	}

	if err := a.goals.DeleteGoal(ctx, *id); err != nil {
		return goalActionError(err, "could not delete the goal")
	}
	fmt.Fprintf(a.out, "Deleted goal %d %q\n", g.ID, g.Name)
	return nil
}

func (a *App) goalsContribute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("goals contribute", flag.ContinueOnError)
	fs.SetOutput(a.out)
	id := fs.Int64("id", 0, "goal id")
	amount := fs.String("amount", "", "contribution amount")
	date := fs.String("date", "", "contribution date YYYY-MM-DD (default today)")
	notes := fs.String("notes", "", "notes")
	quotaPayment := fs.Bool("quota", false, "mark as a planned quota payment")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("goals contribute: -id is required")
	}

	g, err := a.findGoal(ctx, *id)
	if err != nil {
		return err
	}

	form := core.ContributionForm{
		Notes:          *notes,
		IsQuotaPayment: *quotaPayment,
	}
	if form.Amount, err = parseAmountFlag(*amount, "amount"); err != nil {
		return err
	}
	if *date == "" {
		form.Date = core.DateOf(time.Now())
	} else {
		var d core.Date
		if err := d.UnmarshalJSON([]byte(`"` + *date + `"`)); err != nil {
			return fmt.Errorf("invalid -date %q: use YYYY-MM-DD", *date)
		}
		form.Date = d
	}

	updated, progress, err := a.goals.Contribute(ctx, g, form)
	if err != nil {
		return goalActionError(err, "could not add the contribution")
	}

	fmt.Fprintf(a.out, "Saved %s to %q: now %s of %s (%.1f%%)\n",
		form.Amount, updated.Name, updated.CurrentAmount, updated.TargetAmount, progress.Percent)
	if progress.Overfunded {
		fmt.Fprintln(a.out, "Target reached. Close it with `finzen goals achieve` when you are ready.")
	}
	return nil
}

func (a *App) goalsAchieve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("goals achieve", flag.ContinueOnError)
	fs.SetOutput(a.out)
	id := fs.Int64("id", 0, "goal id")
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("goals achieve: -id is required")
	}

	g, err := a.findGoal(ctx, *id)
	if err != nil {
		return err
	}

	if !*yes {
		prompt := fmt.Sprintf("Mark goal %q as achieved? This cannot be undone. [y/N] ", g.Name)
		if !a.confirm(prompt) {
			fmt.Fprintln(a.out, "Aborted.")
			return nil
		}
	}

	achieved, err := a.goals.Achieve(ctx, g)
	if err != nil {
		return goalActionError(err, "could not mark the goal as achieved")
	}
	fmt.Fprintf(a.out, "Goal %q achieved with %s saved. Congratulations!\n",
		achieved.Name, achieved.CurrentAmount)
	return nil
}

func (a *App) findGoal(ctx context.Context, id int64) (core.Goal, error) {
	views, err := a.goals.Goals(ctx)
	if err != nil {
		return core.Goal{}, fmt.Errorf("%s", api.UserMessage(err, "could not load goals"))
	}
	for _, v := range views {
		if v.Goal.ID == id {
			return v.Goal, nil
		}
	}
	return core.Goal{}, fmt.Errorf("goal %d not found", id)
}

func (a *App) confirm(prompt string) bool {
	fmt.Fprint(a.out, prompt)
	reader := bufio.NewReader(a.in)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func parseAmountFlag(value, name string) (core.Money, error) {
	if strings.TrimSpace(value) == "" {
		return core.Money{}, fmt.Errorf("-%s is required", name)
	}
	m, err := core.ParseMoney(value)
	if err != nil {
		return core.Money{}, fmt.Errorf("invalid -%s %q: %v", name, value, err)
	}
	return m, nil
}

// goalActionError keeps validation and precondition messages verbatim
// and maps everything else through the backend detail or a fallback.
func goalActionError(err error, fallback string) error {
	var verr *core.ValidationError
	var perr *goal.PreconditionError
	if errors.As(err, &verr) || errors.As(err, &perr) || errors.Is(err, goal.ErrAlreadyAchieved) {
		return err
	}
	return fmt.Errorf("%s", api.UserMessage(err, fallback))
}
