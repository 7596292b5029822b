package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finzen/internal/core"
	"finzen/internal/goal"
	"finzen/internal/journal"
	"finzen/internal/log"
)

// GoalsAPI is the slice of the backend client the goal flows need.
type GoalsAPI interface {
	List(ctx context.Context) ([]core.Goal, error)
	Create(ctx context.Context, form core.GoalForm) (core.Goal, error)
	Update(ctx context.Context, id int64, form core.GoalForm) (core.Goal, error)
	Delete(ctx context.Context, id int64) error
	AddContribution(ctx context.Context, goalID int64, form core.ContributionForm) (core.Goal, error)
	Achieve(ctx context.Context, id int64) (core.Goal, error)
}

// SyncPublisher announces new journal entries to the export worker.
type SyncPublisher interface {
	PublishJournalSync(ctx context.Context, entryID int64) error
}

// GoalView pairs a goal with its engine-derived display figures.
type GoalView struct {
	Goal     core.Goal
	Progress goal.Progress
	Estimate *goal.Estimate
}

// GoalService orchestrates goal operations: the backend owns state, the
// journal records what happened, and the publisher is best-effort.
type GoalService struct {
	api       GoalsAPI
	journal   *journal.Store
	publisher SyncPublisher
}

func NewGoalService(api GoalsAPI, store *journal.Store, publisher SyncPublisher) *GoalService {
	return &GoalService{
		api:       api,
		journal:   store,
		publisher: publisher,
	}
}

// Goals lists goals with progress and, where a quota is set, a
// completion estimate for active goals.
func (s *GoalService) Goals(ctx context.Context) ([]GoalView, error) {
	goals, err := s.api.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		view := GoalView{Goal: g}
		if p, err := goal.ComputeProgress(g); err == nil {
			view.Progress = p
		}
		if g.HasQuota() && g.Status == core.StatusActive {
			if est, err := goal.EstimateCompletion(g, core.DateOf(time.Now())); err == nil {
				view.Estimate = &est
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// CreateGoal validates the form, creates the goal on the backend, and
// records the mutation.
func (s *GoalService) CreateGoal(ctx context.Context, form core.GoalForm) (core.Goal, error) {
	if err := form.Validate(); err != nil {
		return core.Goal{}, err
	}

	created, err := s.api.Create(ctx, form)
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}

	s.record(ctx, journal.Entry{
		Resource:    "goal",
		Action:      journal.ActionCreate,
		Reference:   fmt.Sprintf("goal:%d", created.ID),
		AmountCents: created.TargetAmount.Cents,
		Notes:       created.Name,
		OccurredOn:  core.DateOf(time.Now()),
	})

	return created, nil
}

// UpdateGoal validates the form and applies it on the backend.
func (s *GoalService) UpdateGoal(ctx context.Context, id int64, form core.GoalForm) (core.Goal, error) {
	if err := form.Validate(); err != nil {
		return core.Goal{}, err
	}

	updated, err := s.api.Update(ctx, id, form)
	if err != nil {
		return core.Goal{}, fmt.Errorf("update goal: %w", err)
	}

	s.record(ctx, journal.Entry{
		Resource:    "goal",
		Action:      journal.ActionUpdate,
		Reference:   fmt.Sprintf("goal:%d", updated.ID),
		AmountCents: updated.TargetAmount.Cents,
		Notes:       updated.Name,
		OccurredOn:  core.DateOf(time.Now()),
	})

	return updated, nil
}

// DeleteGoal removes the goal and its contributions on the backend.
func (s *GoalService) DeleteGoal(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}

	s.record(ctx, journal.Entry{
		Resource:   "goal",
		Action:     journal.ActionDelete,
		Reference:  fmt.Sprintf("goal:%d", id),
		OccurredOn: core.DateOf(time.Now()),
	})

	return nil
}

// Contribute sends a contribution to the backend and returns the goal
// exactly as the server re-rendered it. The expected amount is computed
// up front only to reject impossible submissions early; the server
// result is authoritative and may differ.
func (s *GoalService) Contribute(ctx context.Context, g core.Goal, form core.ContributionForm) (core.Goal, goal.Progress, error) {
	if err := form.Validate(); err != nil {
		return core.Goal{}, goal.Progress{}, err
	}
	if _, err := goal.ExpectAfterContribution(g, core.Contribution{
		GoalID: g.ID,
		Amount: form.Amount,
		Date:   form.Date,
	}); err != nil {
		return core.Goal{}, goal.Progress{}, err
	}

	updated, err := s.api.AddContribution(ctx, g.ID, form)
	if err != nil {
		return core.Goal{}, goal.Progress{}, fmt.Errorf("add contribution: %w", err)
	}

	progress, err := goal.ComputeProgress(updated)
	if err != nil {
		return core.Goal{}, goal.Progress{}, fmt.Errorf("compute progress: %w", err)
	}

	s.record(ctx, journal.Entry{
		Resource:       "contribution",
		Action:         journal.ActionContribute,
		Reference:      fmt.Sprintf("goal:%d", g.ID),
		AmountCents:    form.Amount.Cents,
		IsQuotaPayment: form.IsQuotaPayment,
		Notes:          form.Notes,
		OccurredOn:     form.Date,
	})

	return updated, progress, nil
}

// Achieve closes the goal. The transition is checked locally first so a
// terminal goal fails fast, then the backend performs it.
func (s *GoalService) Achieve(ctx context.Context, g core.Goal) (core.Goal, error) {
	if _, err := goal.MarkAchieved(g); err != nil {
		return core.Goal{}, err
	}

	achieved, err := s.api.Achieve(ctx, g.ID)
	if err != nil {
		return core.Goal{}, fmt.Errorf("achieve goal: %w", err)
	}

	s.record(ctx, journal.Entry{
		Resource:   "goal",
		Action:     journal.ActionAchieve,
		Reference:  fmt.Sprintf("goal:%d", g.ID),
		Notes:      g.Name,
		OccurredOn: core.DateOf(time.Now()),
	})

	return achieved, nil
}

// record appends a journal entry and announces it. Neither step may
// fail the user action: the backend mutation already succeeded.
func (s *GoalService) record(ctx context.Context, e journal.Entry) {
	if s.journal == nil {
		return
	}

	id, err := s.journal.Append(ctx, e)
	if err != nil {
		slog.ErrorContext(ctx, "failed to journal mutation",
			log.FieldResource, e.Resource, log.FieldAction, e.Action, log.FieldError, err)
		return
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishJournalSync(ctx, id); err != nil {
		slog.WarnContext(ctx, "failed to publish journal sync message",
			log.FieldEntryID, id, log.FieldError, err)
	}
}
