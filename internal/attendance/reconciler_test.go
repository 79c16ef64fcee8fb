package attendance_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"workzen/internal/attendance"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRepo struct {
	withTxFn                      func(tx *sql.Tx) attendance.Repository
	createFn                      func(ctx context.Context, a *attendance.Attendance) error
	findByEmployeeAndDateFn       func(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Attendance, error)
	findAllByCompanyFn            func(ctx context.Context, companyID string) ([]attendance.Attendance, error)
	findAllByCompanyAndEmployeeFn func(ctx context.Context, companyID, employeeID string) ([]attendance.Attendance, error)
	findOpenFn                    func(ctx context.Context, upTo time.Time) ([]attendance.Attendance, error)
	updateFn                      func(ctx context.Context, a *attendance.Attendance) error
	closeIfStillOpenFn            func(ctx context.Context, id string, clockOut time.Time, hours float64, status string) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) attendance.Repository                    { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, a *attendance.Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, companyID, employeeID, date)
}
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]attendance.Attendance, error) {
	return f.findAllByCompanyFn(ctx, companyID)
}
func (f *fakeRepo) FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]attendance.Attendance, error) {
	return f.findAllByCompanyAndEmployeeFn(ctx, companyID, employeeID)
}
func (f *fakeRepo) FindOpen(ctx context.Context, upTo time.Time) ([]attendance.Attendance, error) {
	return f.findOpenFn(ctx, upTo)
}
func (f *fakeRepo) Update(ctx context.Context, a *attendance.Attendance) error { return f.updateFn(ctx, a) }
func (f *fakeRepo) CloseIfStillOpen(ctx context.Context, id string, clockOut time.Time, hours float64, status string) (bool, error) {
	return f.closeIfStillOpenFn(ctx, id, clockOut, hours, status)
}

func openRow(day time.Time, clockInHour int) attendance.Attendance {
	return attendance.Attendance{
		ID:             uuid.New(),
		CompanyID:      uuid.New(),
		EmployeeID:     uuid.New(),
		AttendanceDate: day,
		ClockIn:        time.Date(day.Year(), day.Month(), day.Day(), clockInHour, 0, 0, 0, time.UTC),
		Status:         attendance.StatusPresent,
	}
}

func TestReconciler_ImputesCutoffCheckout(t *testing.T) {
	yesterday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	row := openRow(yesterday, 9)

	var gotClockOut time.Time
	var gotHours float64
	var gotStatus string

	repo := &fakeRepo{}
	repo.findOpenFn = func(ctx context.Context, upTo time.Time) ([]attendance.Attendance, error) {
		return []attendance.Attendance{row}, nil
	}
	repo.closeIfStillOpenFn = func(ctx context.Context, id string, clockOut time.Time, hours float64, status string) (bool, error) {
		gotClockOut = clockOut
		gotHours = hours
		gotStatus = status
		return true, nil
	}

	r := attendance.NewReconciler(repo, zap.NewNop())
	now := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
	result, err := r.ReconcileIncomplete(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Updated)

	// Checkout lands at 18:00 of the row's own day, not of today.
	assert.Equal(t, time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC), gotClockOut)
	assert.InDelta(t, 9.0, gotHours, 1e-6)
	assert.Equal(t, attendance.StatusPresent, gotStatus)
}

func TestReconciler_ShortDayBecomesHalfDay(t *testing.T) {
	yesterday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	row := openRow(yesterday, 15) // 15:00 clock-in leaves 3h until cutoff

	var gotStatus string
	repo := &fakeRepo{}
	repo.findOpenFn = func(ctx context.Context, upTo time.Time) ([]attendance.Attendance, error) {
		return []attendance.Attendance{row}, nil
	}
	repo.closeIfStillOpenFn = func(ctx context.Context, id string, clockOut time.Time, hours float64, status string) (bool, error) {
		gotStatus = status
		return true, nil
	}

	r := attendance.NewReconciler(repo, zap.NewNop())
	now := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
	_, err := r.ReconcileIncomplete(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, gotStatus)
}

func TestReconciler_SkipsSameDayBeforeCutoff(t *testing.T) {
	today := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	row := openRow(today, 9)

	repo := &fakeRepo{}
	repo.findOpenFn = func(ctx context.Context, upTo time.Time) ([]attendance.Attendance, error) {
		return []attendance.Attendance{row}, nil
	}
	repo.closeIfStillOpenFn = func(ctx context.Context, id string, clockOut time.Time, hours float64, status string) (bool, error) {
		t.Fatal("must not close a same-day row before the cutoff")
		return false, nil
	}

	r := attendance.NewReconciler(repo, zap.NewNop())
	now := time.Date(2025, 3, 11, 14, 0, 0, 0, time.UTC)
	result, err := r.ReconcileIncomplete(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 0, result.Updated)
}

func TestReconciler_RacingClockOutNotOverwritten(t *testing.T) {
	yesterday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	row := openRow(yesterday, 9)

	repo := &fakeRepo{}
	repo.findOpenFn = func(ctx context.Context, upTo time.Time) ([]attendance.Attendance, error) {
		return []attendance.Attendance{row}, nil
	}
	repo.closeIfStillOpenFn = func(ctx context.Context, id string, clockOut time.Time, hours float64, status string) (bool, error) {
		// The conditional update found the row already closed.
		return false, nil
	}

	r := attendance.NewReconciler(repo, zap.NewNop())
	now := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
	result, err := r.ReconcileIncomplete(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 0, result.Updated)
}

func TestReconciler_PerRowFailureDoesNotAbortSweep(t *testing.T) {
	yesterday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	first := openRow(yesterday, 9)
	second := openRow(yesterday, 10)

	repo := &fakeRepo{}
	repo.findOpenFn = func(ctx context.Context, upTo time.Time) ([]attendance.Attendance, error) {
		return []attendance.Attendance{first, second}, nil
	}
	repo.closeIfStillOpenFn = func(ctx context.Context, id string, clockOut time.Time, hours float64, status string) (bool, error) {
		if id == first.ID.String() {
			return false, errors.New("deadlock detected")
		}
		return true, nil
	}

	r := attendance.NewReconciler(repo, zap.NewNop())
	now := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
	result, err := r.ReconcileIncomplete(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Updated)
}

func TestReconciler_SecondSweepFindsNothing(t *testing.T) {
	calls := 0
	repo := &fakeRepo{}
	repo.findOpenFn = func(ctx context.Context, upTo time.Time) ([]attendance.Attendance, error) {
		calls++
		if calls == 1 {
			return []attendance.Attendance{openRow(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 9)}, nil
		}
		return nil, nil
	}
	repo.closeIfStillOpenFn = func(ctx context.Context, id string, clockOut time.Time, hours float64, status string) (bool, error) {
		return true, nil
	}

	r := attendance.NewReconciler(repo, zap.NewNop())
	now := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)

	first, err := r.ReconcileIncomplete(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Updated)

	second, err := r.ReconcileIncomplete(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, 0, second.Processed)
	assert.Equal(t, 0, second.Updated)
}

func TestReconciler_FourHoursExactlyStaysPresent(t *testing.T) {
	yesterday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	row := openRow(yesterday, 14) // 14:00 clock-in leaves exactly 4h until cutoff

	var gotHours float64
	var gotStatus string
	repo := &fakeRepo{}
	repo.findOpenFn = func(ctx context.Context, upTo time.Time) ([]attendance.Attendance, error) {
		return []attendance.Attendance{row}, nil
	}
	repo.closeIfStillOpenFn = func(ctx context.Context, id string, clockOut time.Time, hours float64, status string) (bool, error) {
		gotHours = hours
		gotStatus = status
		return true, nil
	}

	r := attendance.NewReconciler(repo, zap.NewNop())
	now := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
	_, err := r.ReconcileIncomplete(context.Background(), now)
	assert.NoError(t, err)
	assert.InDelta(t, 4.0, gotHours, 1e-6)
	assert.Equal(t, attendance.StatusPresent, gotStatus)
}

func TestReconciler_LogsEachReconciledRow(t *testing.T) {
	yesterday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	row := openRow(yesterday, 9)

	repo := &fakeRepo{}
	repo.findOpenFn = func(ctx context.Context, upTo time.Time) ([]attendance.Attendance, error) {
		return []attendance.Attendance{row}, nil
	}
	repo.closeIfStillOpenFn = func(ctx context.Context, id string, clockOut time.Time, hours float64, status string) (bool, error) {
		return true, nil
	}

	core, observed := observer.New(zap.InfoLevel)
	r := attendance.NewReconciler(repo, zap.New(core))
	now := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
	_, err := r.ReconcileIncomplete(context.Background(), now)
	assert.NoError(t, err)

	entries := observed.FilterMessage("open attendance row reconciled").All()
	assert.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, row.EmployeeID.String(), fields["employee_id"])
	assert.Equal(t, "2025-03-10", fields["date"])
	assert.InDelta(t, 9.0, fields["hours_worked"].(float64), 1e-6)
	assert.Equal(t, attendance.StatusPresent, fields["status"])
}
