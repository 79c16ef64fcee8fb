package salarystructure

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Resolver answers "which salary structure applies to this employee on this
// date". Pure read, no side effects; callers fall back to DeriveDefault when
// it returns nil.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// ResolveAsOf returns the applicable structure or nil when none covers the
// as-of date. Among overlapping windows the latest effective_from not
// exceeding asOf wins.
func (r *Resolver) ResolveAsOf(ctx context.Context, companyID, employeeID string, asOf time.Time) (*SalaryStructure, error) {
	structure, err := r.repo.FindApplicable(ctx, companyID, employeeID, asOf)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return structure, nil
}

// ApplicableAsOf picks the winning structure among candidate versions: the
// window must cover asOf (effective_from on or before it, effective_to unset
// or on or after it), and among covering windows the latest effective_from
// wins. Returns nil when no window covers the date. Date precision only;
// time-of-day is ignored.
func ApplicableAsOf(candidates []SalaryStructure, asOf time.Time) *SalaryStructure {
	day := truncateToDate(asOf)

	var winner *SalaryStructure
	for i := range candidates {
		c := &candidates[i]
		from := truncateToDate(c.EffectiveFrom)
		if from.After(day) {
			continue
		}
		if c.EffectiveTo != nil && truncateToDate(*c.EffectiveTo).Before(day) {
			continue
		}
		if winner == nil || from.After(truncateToDate(winner.EffectiveFrom)) {
			winner = c
		}
	}
	return winner
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
