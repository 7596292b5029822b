package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Daily    Frequency = "daily"
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
)

const (
	StatusActive   GoalStatus = "active"
	StatusAchieved GoalStatus = "achieved"
)

type (
	// Frequency is the cadence implied by a goal's quota.
	Frequency string

	// GoalStatus is the lifecycle state of a savings goal. The only
	// transition is active -> achieved; achieved is terminal.
	GoalStatus string

	// Date is a calendar date at UTC midnight. The backend exchanges
	// dates as "2006-01-02" strings.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Goal is a savings goal as reported by the backend. CurrentAmount is
	// server-authoritative: it equals the sum of all recorded
	// contributions and is never recomputed client-side.
	Goal struct {
		ID            int64      `json:"id"`
		Name          string     `json:"name"`
		Description   string     `json:"description"`
		TargetAmount  Money      `json:"target_amount"`
		CurrentAmount Money      `json:"current_amount"`
		QuotaAmount   Money      `json:"quota_amount"`
		Frequency     Frequency  `json:"frequency"`
		Color         string     `json:"color"`
		Status        GoalStatus `json:"status"`
		CreatedAt     time.Time  `json:"created_at"`
	}

	// Contribution is a single recorded deposit toward a goal. Immutable
	// once created; the goal owns its contributions.
	Contribution struct {
		ID             int64  `json:"id"`
		GoalID         int64  `json:"goal_id"`
		Amount         Money  `json:"amount"`
		Date           Date   `json:"date"`
		Notes          string `json:"notes"`
		IsQuotaPayment bool   `json:"is_quota_payment"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidStatus    = errors.New("invalid status")
)

func (f Frequency) Validate() error {
	switch f {
	case Daily, Weekly, Biweekly, Monthly:
		return nil
	}
	return ErrInvalidFrequency
}

func (s GoalStatus) Validate() error {
	switch s {
	case StatusActive, StatusAchieved:
		return nil
	}
	return ErrInvalidStatus
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar date in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, int(m), d)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return ErrInvalidDate
	}
	*d = Date{Time: t}
	return nil
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// AddMonths returns the date n calendar months later.
func (d Date) AddMonths(n int) Date {
	return Date{Time: d.AddDate(0, n, 0)}
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return errors.New("empty goal name")
	}
	if g.TargetAmount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if g.CurrentAmount.Cents < 0 || g.QuotaAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if err := g.Frequency.Validate(); err != nil {
		return err
	}
	return g.Status.Validate()
}

// HasQuota reports whether the goal carries a fixed periodic contribution.
func (g Goal) HasQuota() bool {
	return g.QuotaAmount.Cents > 0
}

func (c Contribution) Validate() error {
	if err := c.Amount.Validate(); err != nil {
		return err
	}
	return c.Date.Validate()
}
