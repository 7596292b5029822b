package goal

import (
	"errors"
	"fmt"
	"time"

	"finzen/internal/core"
)

// ErrAlreadyAchieved is returned when an operation requires an active
// goal but the goal has already been marked achieved.
var ErrAlreadyAchieved = errors.New("goal already achieved")

// PreconditionError marks a programming error in the caller: invoking a
// computation on a snapshot that does not satisfy its preconditions.
// It fails loudly instead of returning Inf/NaN that would corrupt
// displayed progress.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition failed: %s", e.Op, e.Reason)
}

// Progress holds the derived completion values for one goal snapshot.
type Progress struct {
	// Percent is clamped to [0, 100] so progress bars stay bounded.
	Percent float64
	// Ratio is the unclamped current/target ratio; above 1.0 the goal is
	// overfunded.
	Ratio      float64
	Remaining  core.Money
	Overfunded bool
}

// Estimate projects when a goal reaches its target at the current quota
// cadence.
type Estimate struct {
	// Periods is the number of quota payments still needed.
	Periods int
	Date    core.Date
	// Months expresses the same duration in whole months, rounded up.
	// Display only.
	Months int
}

// ComputeProgress derives completion values from a goal snapshot.
// The target amount must be positive; a non-positive target is a data
// error from upstream and fails with a PreconditionError.
func ComputeProgress(g core.Goal) (Progress, error) {
	if g.TargetAmount.Cents <= 0 {
		return Progress{}, &PreconditionError{Op: "compute progress", Reason: "target amount must be positive"}
	}
	ratio := float64(g.CurrentAmount.Cents) / float64(g.TargetAmount.Cents)
	percent := ratio * 100
	if percent > 100 {
		percent = 100
	}
	remaining := g.TargetAmount.Cents - g.CurrentAmount.Cents
	if remaining < 0 {
		remaining = 0
	}
	return Progress{
		Percent:    percent,
		Ratio:      ratio,
		Remaining:  core.Money{Cents: remaining},
		Overfunded: g.CurrentAmount.Cents > g.TargetAmount.Cents,
	}, nil
}

// EstimateCompletion projects the completion date for an active goal
// with a quota. Callers must check HasQuota first; a goal without one
// has nothing to project and the call fails with a PreconditionError.
func EstimateCompletion(g core.Goal, asOf core.Date) (Estimate, error) {
	const op = "estimate completion"
	if g.QuotaAmount.Cents <= 0 {
		return Estimate{}, &PreconditionError{Op: op, Reason: "goal has no quota"}
	}
	if g.Status != core.StatusActive {
		return Estimate{}, &PreconditionError{Op: op, Reason: "goal is not active"}
	}
	progress, err := ComputeProgress(g)
	if err != nil {
		return Estimate{}, err
	}
	if asOf.IsZero() {
		asOf = core.DateOf(time.Now())
	}
	if progress.Remaining.Cents == 0 {
		return Estimate{Periods: 0, Date: asOf, Months: 0}, nil
	}

	adv, err := AdvancerFor(g.Frequency)
	if err != nil {
		return Estimate{}, &PreconditionError{Op: op, Reason: err.Error()}
	}
	// ceil(remaining / quota)
	periods := int((progress.Remaining.Cents + g.QuotaAmount.Cents - 1) / g.QuotaAmount.Cents)
	date := adv.Advance(asOf, periods)
	return Estimate{
		Periods: periods,
		Date:    date,
		Months:  monthsCeil(asOf, date),
	}, nil
}

// ExpectAfterContribution returns the current amount the server is
// expected to report once the contribution is recorded. The caller never
// applies this value locally; it only compares it against the goal
// returned by the server.
func ExpectAfterContribution(g core.Goal, c core.Contribution) (core.Money, error) {
	const op = "apply contribution"
	if g.Status != core.StatusActive {
		return core.Money{}, ErrAlreadyAchieved
	}
	if c.Amount.Cents <= 0 {
		return core.Money{}, &PreconditionError{Op: op, Reason: "amount must be positive"}
	}
	if c.Date.IsZero() {
		return core.Money{}, &PreconditionError{Op: op, Reason: "date is required"}
	}
	return core.Money{Cents: g.CurrentAmount.Cents + c.Amount.Cents}, nil
}

// MarkAchieved flips an active goal to achieved. The transition is
// explicit and manual: it never happens automatically when the target is
// reached or exceeded, and achieved is terminal. Calling it on an
// achieved goal returns ErrAlreadyAchieved so consumers can surface a
// confirmation instead of silently repeating it.
func MarkAchieved(g core.Goal) (core.Goal, error) {
	if g.Status == core.StatusAchieved {
		return g, ErrAlreadyAchieved
	}
	if g.Status != core.StatusActive {
		return g, &PreconditionError{Op: "mark achieved", Reason: fmt.Sprintf("unknown status %q", g.Status)}
	}
	g.Status = core.StatusAchieved
	return g, nil
}
