// Package billing holds the pure billing-period arithmetic shared by the
// invoice generator and the subscription ledger.
package billing

import (
	"errors"
	"math"
	"time"

	"marketplace-billing-be/internal/entity"
)

var (
	ErrInvalidCycle      = errors.New("billing: invalid billing cycle")
	ErrZeroLengthPeriod  = errors.New("billing: zero-length billing period")
	ErrNegativePlanPrice = errors.New("billing: plan price must not be negative")
)

// ProrataResult is the partial-period charge for a plan activated on a
// given date. PeriodEnd is the inclusive last day of the period.
type ProrataResult struct {
	Amount         int64
	DaysCalculated int
	PeriodStart    time.Time
	PeriodEnd      time.Time
	IsProrata      bool
}

// ComputeProrata charges the remainder of the natural billing period that
// contains reference.
//
// Calendar convention: periods are true calendar-month spans. A cycle of m
// months is anchored to month boundaries aligned to m within the year
// (monthly: every 1st; semesterly: Jan 1 and Jul 1; annually: Jan 1).
// fraction = remainingDays / totalDaysInPeriod, clamped to [0,1];
// amount = round-to-nearest(price * fraction). The reference day itself is
// charged, so activating on the first day of a period yields the full price
// with IsProrata=false.
func ComputeProrata(plan *entity.Plan, reference time.Time) (*ProrataResult, error) {
	if plan == nil || !plan.BillingCycle.Valid() {
		return nil, ErrInvalidCycle
	}
	if plan.Price < 0 {
		return nil, ErrNegativePlanPrice
	}

	day := TruncateToDay(reference)
	months := plan.BillingCycle.Months()

	anchorMonth := ((int(day.Month())-1)/months)*months + 1
	periodStart := time.Date(day.Year(), time.Month(anchorMonth), 1, 0, 0, 0, 0, day.Location())
	boundary := periodStart.AddDate(0, months, 0) // exclusive

	totalDays := daysBetween(periodStart, boundary)
	if totalDays <= 0 {
		return nil, ErrZeroLengthPeriod
	}

	remainingDays := daysBetween(day, boundary)
	fraction := float64(remainingDays) / float64(totalDays)
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	return &ProrataResult{
		Amount:         int64(math.Round(float64(plan.Price) * fraction)),
		DaysCalculated: remainingDays,
		PeriodStart:    day,
		PeriodEnd:      boundary.AddDate(0, 0, -1),
		IsProrata:      !day.Equal(periodStart),
	}, nil
}

// NextPeriod returns the full billing period that starts at start for the
// given cycle: [start, start+cycle), with the inclusive end day and its
// length in days.
func NextPeriod(cycle entity.BillingCycle, start time.Time) (end time.Time, days int, err error) {
	if !cycle.Valid() {
		return time.Time{}, 0, ErrInvalidCycle
	}
	day := TruncateToDay(start)
	boundary := day.AddDate(0, cycle.Months(), 0)
	days = daysBetween(day, boundary)
	if days <= 0 {
		return time.Time{}, 0, ErrZeroLengthPeriod
	}
	return boundary.AddDate(0, 0, -1), days, nil
}

// MonthlyRevenue normalizes a plan price to a monthly figure, rounding to
// the nearest integer currency unit per subscription.
func MonthlyRevenue(price int64, cycle entity.BillingCycle) int64 {
	months := cycle.Months()
	if months <= 0 {
		return 0
	}
	return int64(math.Round(float64(price) / float64(months)))
}

// TruncateToDay drops the time-of-day component.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
