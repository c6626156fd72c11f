package entity

import (
	"time"

	"github.com/google/uuid"
)

type BillingCycle string

const (
	BillingCycleMonthly    BillingCycle = "monthly"
	BillingCycleSemesterly BillingCycle = "semesterly"
	BillingCycleAnnually   BillingCycle = "annually"
)

// Months returns the cycle length in calendar months.
func (c BillingCycle) Months() int {
	switch c {
	case BillingCycleSemesterly:
		return 6
	case BillingCycleAnnually:
		return 12
	default:
		return 1
	}
}

func (c BillingCycle) Valid() bool {
	switch c {
	case BillingCycleMonthly, BillingCycleSemesterly, BillingCycleAnnually:
		return true
	}
	return false
}

// Plan is an admin-authored subscription plan. Plans are never deleted,
// only disabled via IsActive.
type Plan struct {
	Id           uuid.UUID
	Name         string
	Slug         string
	Description  string
	Price        int64 // integer currency units
	BillingCycle BillingCycle
	FreeMonths   int
	IsActive     bool
	Features     []string
	SortOrder    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
