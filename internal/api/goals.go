package api

import (
	"context"
	"fmt"

	"finzen/internal/core"
)

// GoalsService wraps the /goals endpoints. Mutations return the server's
// record; callers re-render from it and never apply local deltas
// (current_amount is server-authoritative).
type GoalsService struct {
	client *Client
}

func (s *GoalsService) List(ctx context.Context) ([]core.Goal, error) {
	var goals []core.Goal
	if err := s.client.get(ctx, "/goals", &goals); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (s *GoalsService) Create(ctx context.Context, form core.GoalForm) (core.Goal, error) {
	var g core.Goal
	if err := s.client.post(ctx, "/goals", form, &g); err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	return g, nil
}

func (s *GoalsService) Update(ctx context.Context, id int64, form core.GoalForm) (core.Goal, error) {
	var g core.Goal
	if err := s.client.put(ctx, fmt.Sprintf("/goals/%d", id), form, &g); err != nil {
		return core.Goal{}, fmt.Errorf("update goal %d: %w", id, err)
	}
	return g, nil
}

// Delete removes a goal; the backend cascades to its contributions.
func (s *GoalsService) Delete(ctx context.Context, id int64) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/goals/%d", id)); err != nil {
		return fmt.Errorf("delete goal %d: %w", id, err)
	}
	return nil
}

// AddContribution records a deposit and returns the goal with the
// server-computed current_amount.
func (s *GoalsService) AddContribution(ctx context.Context, goalID int64, form core.ContributionForm) (core.Goal, error) {
	var g core.Goal
	if err := s.client.post(ctx, fmt.Sprintf("/goals/%d/contributions", goalID), form, &g); err != nil {
		return core.Goal{}, fmt.Errorf("add contribution to goal %d: %w", goalID, err)
	}
	return g, nil
}

// Achieve marks the goal achieved. Terminal; the backend rejects further
// contributions afterwards.
func (s *GoalsService) Achieve(ctx context.Context, id int64) (core.Goal, error) {
	var g core.Goal
	if err := s.client.patch(ctx, fmt.Sprintf("/goals/%d/achieve", id), nil, &g); err != nil {
		return core.Goal{}, fmt.Errorf("achieve goal %d: %w", id, err)
	}
	return g, nil
}
