package stats

import (
	"math"
	"time"
)

type Metric struct {
	Current       float64 `json:"current"`
	Previous      float64 `json:"previous"`
	PercentChange float64 `json:"percent_change"`
}

type Dashboard struct {
	Revenue     Metric    `json:"revenue"`
	Orders      Metric    `json:"orders"`
	Products    Metric    `json:"products"`
	Customers   Metric    `json:"customers"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Window is a half-open [From, To) range.
type Window struct {
	From time.Time
	To   time.Time
}

// MonthWindows returns the calendar month containing now and the month
// before it, in now's location.
func MonthWindows(now time.Time) (current, previous Window) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	current = Window{From: first, To: first.AddDate(0, 1, 0)}
	previous = Window{From: first.AddDate(0, -1, 0), To: first}
	return current, previous
}

// PercentChange reports 100 whenever previous is zero, regardless of
// current; otherwise the relative delta rounded to one decimal place.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 100
	}
	return math.Round((current-previous)/previous*1000) / 10
}

func NewMetric(current, previous float64) Metric {
	return Metric{
		Current:       current,
		Previous:      previous,
		PercentChange: PercentChange(current, previous),
	}
}
