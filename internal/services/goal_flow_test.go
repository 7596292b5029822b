package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"finzen/internal/core"
	"finzen/internal/goal"
	"finzen/internal/journal"
)

type fakeGoalsAPI struct {
	goals      []core.Goal
	created    core.Goal
	updated    core.Goal
	achieved   core.Goal
	afterAdd   core.Goal
	err        error
	addCalls   int
	lastForm   core.ContributionForm
	deletedIDs []int64
}

func (f *fakeGoalsAPI) List(context.Context) ([]core.Goal, error) {
	return f.goals, f.err
}

func (f *fakeGoalsAPI) Create(_ context.Context, form core.GoalForm) (core.Goal, error) {
	if f.err != nil {
		return core.Goal{}, f.err
	}
	return f.created, nil
}

func (f *fakeGoalsAPI) Update(_ context.Context, id int64, form core.GoalForm) (core.Goal, error) {
	if f.err != nil {
		return core.Goal{}, f.err
	}
	return f.updated, nil
}

func (f *fakeGoalsAPI) Delete(_ context.Context, id int64) error {
	f.deletedIDs = append(f.deletedIDs, id)
	return f.err
}

func (f *fakeGoalsAPI) AddContribution(_ context.Context, goalID int64, form core.ContributionForm) (core.Goal, error) {
	f.addCalls++
	f.lastForm = form
	if f.err != nil {
		return core.Goal{}, f.err
	}
	return f.afterAdd, nil
}

func (f *fakeGoalsAPI) Achieve(_ context.Context, id int64) (core.Goal, error) {
	if f.err != nil {
		return core.Goal{}, f.err
	}
	return f.achieved, nil
}

type fakePublisher struct {
	entryIDs []int64
	err      error
}

func (f *fakePublisher) PublishJournalSync(_ context.Context, entryID int64) error {
	f.entryIDs = append(f.entryIDs, entryID)
	return f.err
}

func openTestJournal(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func activeGoal() core.Goal {
	return core.Goal{
		ID:            3,
		Name:          "Fondo de emergencia",
		TargetAmount:  core.Money{Cents: 100000000},
		CurrentAmount: core.Money{Cents: 40000000},
		QuotaAmount:   core.Money{Cents: 10000000},
		Frequency:     core.Monthly,
		Status:        core.StatusActive,
	}
}

func TestGoalServiceContributeRendersServerState(t *testing.T) {
	after := activeGoal()
	after.CurrentAmount = core.Money{Cents: 42500000}
	api := &fakeGoalsAPI{afterAdd: after}
	store := openTestJournal(t)
	pub := &fakePublisher{}
	svc := NewGoalService(api, store, pub)

	form := core.ContributionForm{
		Amount:         core.Money{Cents: 2500000},
		Date:           core.NewDate(2025, 1, 31),
		IsQuotaPayment: true,
	}
	updated, progress, err := svc.Contribute(context.Background(), activeGoal(), form)
	if err != nil {
		t.Fatalf("Contribute() error = %v", err)
	}
	if updated.CurrentAmount.Cents != 42500000 {
		t.Errorf("CurrentAmount = %d, want server value 42500000", updated.CurrentAmount.Cents)
	}
	if progress.Percent != 42.5 {
		t.Errorf("Percent = %v, want 42.5", progress.Percent)
	}
	if api.addCalls != 1 {
		t.Errorf("AddContribution calls = %d, want 1", api.addCalls)
	}

	// The mutation must be journaled and announced.
	if len(pub.entryIDs) != 1 {
		t.Fatalf("published entries = %v, want one", pub.entryIDs)
	}
	entry, err := store.GetByID(context.Background(), pub.entryIDs[0])
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if entry.Action != journal.ActionContribute || entry.AmountCents != 2500000 || !entry.IsQuotaPayment {
		t.Errorf("unexpected journal entry: %+v", entry)
	}
}

func TestGoalServiceContributeRejectsBeforeNetwork(t *testing.T) {
	api := &fakeGoalsAPI{}
	svc := NewGoalService(api, nil, nil)

	tests := []struct {
		name string
		goal core.Goal
		form core.ContributionForm
	}{
		{
			name: "non-positive amount",
			goal: activeGoal(),
			form: core.ContributionForm{Amount: core.Money{Cents: 0}, Date: core.NewDate(2025, 1, 31)},
		},
		{
			name: "missing date",
			goal: activeGoal(),
			form: core.ContributionForm{Amount: core.Money{Cents: 100}},
		},
		{
			name: "achieved goal",
			goal: func() core.Goal {
				g := activeGoal()
				g.Status = core.StatusAchieved
				return g
			}(),
			form: core.ContributionForm{Amount: core.Money{Cents: 100}, Date: core.NewDate(2025, 1, 31)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Contribute(context.Background(), tt.goal, tt.form); err == nil {
				t.Error("expected error")
			}
		})
	}
	if api.addCalls != 0 {
		t.Errorf("AddContribution calls = %d, want 0", api.addCalls)
	}
}

func TestGoalServicePublishFailureDoesNotFailAction(t *testing.T) {
	after := activeGoal()
	after.CurrentAmount = core.Money{Cents: 41000000}
	api := &fakeGoalsAPI{afterAdd: after}
	store := openTestJournal(t)
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewGoalService(api, store, pub)

	form := core.ContributionForm{Amount: core.Money{Cents: 1000000}, Date: core.NewDate(2025, 2, 1)}
	if _, _, err := svc.Contribute(context.Background(), activeGoal(), form); err != nil {
		t.Fatalf("Contribute() error = %v, want nil despite publish failure", err)
	}

	// The entry still landed in the journal for the drain pass.
	entries, err := store.ListUnsynced(context.Background(), 10)
	if err != nil || len(entries) != 1 {
		t.Fatalf("unsynced entries = %v err = %v, want one entry", entries, err)
	}
}

func TestGoalServiceAchieveChecksTransitionLocally(t *testing.T) {
	achieved := activeGoal()
	achieved.Status = core.StatusAchieved
	api := &fakeGoalsAPI{achieved: achieved}
	svc := NewGoalService(api, nil, nil)

	got, err := svc.Achieve(context.Background(), activeGoal())
	if err != nil {
		t.Fatalf("Achieve() error = %v", err)
	}
	if got.Status != core.StatusAchieved {
		t.Errorf("Status = %q, want achieved", got.Status)
	}

	if _, err := svc.Achieve(context.Background(), achieved); !errors.Is(err, goal.ErrAlreadyAchieved) {
		t.Errorf("Achieve() on terminal goal error = %v, want ErrAlreadyAchieved", err)
	}
}

func TestGoalServiceCreateValidatesForm(t *testing.T) {
	api := &fakeGoalsAPI{created: activeGoal()}
	svc := NewGoalService(api, nil, nil)

	_, err := svc.CreateGoal(context.Background(), core.GoalForm{Name: ""})
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("CreateGoal() error = %v, want ValidationError", err)
	}

	created, err := svc.CreateGoal(context.Background(), core.GoalForm{
		Name:      "Viaje",
		Target:    core.Money{Cents: 50000000},
		Frequency: core.Monthly,
	})
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}
	if created.ID != 3 {
		t.Errorf("ID = %d, want server value 3", created.ID)
	}
}

func TestGoalServiceGoalsDerivesEstimates(t *testing.T) {
	noQuota := activeGoal()
	noQuota.ID = 4
	noQuota.QuotaAmount = core.Money{}
	api := &fakeGoalsAPI{goals: []core.Goal{activeGoal(), noQuota}}
	svc := NewGoalService(api, nil, nil)

	views, err := svc.Goals(context.Background())
	if err != nil {
		t.Fatalf("Goals() error = %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("views = %d, want 2", len(views))
	}
	if views[0].Estimate == nil || views[0].Estimate.Periods != 6 {
		t.Errorf("expected 6-period estimate for quota goal, got %+v", views[0].Estimate)
	}
	if views[1].Estimate != nil {
		t.Errorf("expected no estimate without quota, got %+v", views[1].Estimate)
	}
	if views[0].Progress.Percent != 40 {
		t.Errorf("Percent = %v, want 40", views[0].Progress.Percent)
	}
}
