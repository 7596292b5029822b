// Package goal computes derived values over goal snapshots: completion
// progress, quota-based completion estimates and the active -> achieved
// status transition. Everything here is pure; authoritative state always
// comes from the backend.
package goal

import (
	"fmt"

	"finzen/internal/core"
)

// PeriodAdvancer is the strategy for one quota cadence. Advance moves a
// date forward by the given number of periods.
type PeriodAdvancer interface {
	Advance(from core.Date, periods int) core.Date
}

// DayStepAdvancer advances by a fixed number of days per period. It
// covers the daily (1), weekly (7) and biweekly (14) cadences.
type DayStepAdvancer struct {
	Days int
}

func (a DayStepAdvancer) Advance(from core.Date, periods int) core.Date {
	return from.AddDays(a.Days * periods)
}

// CalendarMonthAdvancer advances by whole calendar months, so a quota due
// on the 15th stays on the 15th.
type CalendarMonthAdvancer struct{}

func (CalendarMonthAdvancer) Advance(from core.Date, periods int) core.Date {
	return from.AddMonths(periods)
}

var periodAdvancers = map[core.Frequency]PeriodAdvancer{
	core.Daily:    DayStepAdvancer{Days: 1},
	core.Weekly:   DayStepAdvancer{Days: 7},
	core.Biweekly: DayStepAdvancer{Days: 14},
	core.Monthly:  CalendarMonthAdvancer{},
}

// AdvancerFor returns the advancer for a frequency. Returns an error for
// unknown cadences.
func AdvancerFor(frequency core.Frequency) (PeriodAdvancer, error) {
	adv, ok := periodAdvancers[frequency]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", frequency)
	}
	return adv, nil
}

// monthsCeil returns the number of whole calendar months from one date to
// another, rounded up. Used only to express an estimate's duration for
// display.
func monthsCeil(from, to core.Date) int {
	if !to.After(from.Time) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if months < 0 {
		months = 0
	}
	if from.AddMonths(months).Before(to.Time) {
		months++
	}
	return months
}
