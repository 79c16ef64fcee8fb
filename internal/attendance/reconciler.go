package attendance

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	// Imputed checkout hour for rows left open overnight.
	reconcileCutoffHour = 18

	// Minimum worked hours for a reconciled row to stay PRESENT.
	halfDayThresholdHours = 4.0
)

// ReconcileResult reports how many open rows a reconciliation pass looked at
// and how many it actually closed. Updated can trail Processed when rows were
// closed by a racing clock-out or a per-row write failed.
type ReconcileResult struct {
	Processed int
	Updated   int
}

// Reconciler closes attendance rows whose clock-out never arrived, imputing a
// checkout at the cutoff hour of the row's own day.
type Reconciler struct {
	repo   Repository
	logger *zap.Logger
}

func NewReconciler(repo Repository, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.L()
	}
	return &Reconciler{repo: repo, logger: logger.Named("attendance.reconciler")}
}

// ReconcileIncomplete sweeps all open rows up to now's date. Same-day rows are
// left alone until the cutoff hour has passed, since the employee may still
// clock out normally. A row whose imputed hours fall below the half-day
// threshold is downgraded to HALF_DAY instead of staying PRESENT.
func (r *Reconciler) ReconcileIncomplete(ctx context.Context, now time.Time) (ReconcileResult, error) {
	var result ReconcileResult

	rows, err := r.repo.FindOpen(ctx, now)
	if err != nil {
		return result, err
	}

	for _, row := range rows {
		result.Processed++

		d := row.AttendanceDate
		cutoff := time.Date(d.Year(), d.Month(), d.Day(), reconcileCutoffHour, 0, 0, 0, now.Location())
		if now.Before(cutoff) {
			continue
		}

		hours := cutoff.Sub(row.ClockIn).Hours()
		if hours < 0 {
			hours = 0
		}

		status := StatusPresent
		if hours < halfDayThresholdHours {
			status = StatusHalfDay
		}

		closed, err := r.repo.CloseIfStillOpen(ctx, row.ID.String(), cutoff, hours, status)
		if err != nil {
			r.logger.Error("failed to close open attendance row",
				zap.String("attendance_id", row.ID.String()),
				zap.String("employee_id", row.EmployeeID.String()),
				zap.Error(err),
			)
			continue
		}
		if !closed {
			// A real clock-out landed first.
			r.logger.Debug("attendance row already closed",
				zap.String("attendance_id", row.ID.String()),
			)
			continue
		}

		result.Updated++
		r.logger.Info("open attendance row reconciled",
			zap.String("employee_id", row.EmployeeID.String()),
			zap.String("date", d.Format("2006-01-02")),
			zap.Float64("hours_worked", hours),
			zap.String("status", status),
		)
	}

	r.logger.Info("attendance reconciliation finished",
		zap.Int("processed", result.Processed),
		zap.Int("updated", result.Updated),
	)
	return result, nil
}
