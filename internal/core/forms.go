package core

import (
	"fmt"
	"strings"
)

// ValidationError reports a form field that blocks submission. It is
// raised before any network call is made and shown inline next to the
// offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// GoalForm is the typed state of the goal create/edit form. Optional
// fields keep their zero value; required fields are checked by Validate
// before the request payload is built.
type GoalForm struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Target      Money     `json:"target_amount"`
	Quota       Money     `json:"quota_amount"`
	Frequency   Frequency `json:"frequency"`
	Color       string    `json:"color"`
}

// DefaultGoalColor is the display color new goals start with.
const DefaultGoalColor = "#6366f1"

// NewGoalForm returns a form with the defaults for a new goal. Validate
// does not fill anything in, so callers building a form by hand start
// here.
func NewGoalForm() GoalForm {
	return GoalForm{
		Frequency: Monthly,
		Color:     DefaultGoalColor,
	}
}

func (f *GoalForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if f.Target.Cents <= 0 {
		return &ValidationError{Field: "target_amount", Reason: "must be positive"}
	}
	if f.Quota.Cents < 0 {
		return &ValidationError{Field: "quota_amount", Reason: "must not be negative"}
	}
	if err := f.Frequency.Validate(); err != nil {
		return &ValidationError{Field: "frequency", Reason: "must be daily, weekly, biweekly or monthly"}
	}
	return nil
}

// ContributionForm is the typed state of the "add contribution" modal.
type ContributionForm struct {
	Amount         Money  `json:"amount"`
	Date           Date   `json:"date"`
	Notes          string `json:"notes"`
	IsQuotaPayment bool   `json:"is_quota_payment"`
}

func (f *ContributionForm) Validate() error {
	if f.Amount.Cents <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if f.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "required"}
	}
	return nil
}
