package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"workzen/internal/leave"
	leaveerrors "workzen/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveRepo struct {
	withTxFn                   func(tx *sql.Tx) leave.Repository
	createFn                   func(ctx context.Context, l *leave.Leave) error
	findAllByCompanyFn         func(ctx context.Context, companyID string) ([]leave.Leave, error)
	findByIDAndCompanyFn       func(ctx context.Context, companyID, id string) (*leave.Leave, error)
	updateFn                   func(ctx context.Context, l *leave.Leave) error
	deleteFn                   func(ctx context.Context, companyID, id string) error
	employeeBelongsToCompanyFn func(ctx context.Context, companyID, employeeID string) (bool, error)
	hasOverlappingPeriodFn     func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

func (f *fakeLeaveRepo) WithTx(tx *sql.Tx) leave.Repository              { return f.withTxFn(tx) }
func (f *fakeLeaveRepo) Create(ctx context.Context, l *leave.Leave) error { return f.createFn(ctx, l) }
func (f *fakeLeaveRepo) FindAllByCompany(ctx context.Context, companyID string) ([]leave.Leave, error) {
	return f.findAllByCompanyFn(ctx, companyID)
}
func (f *fakeLeaveRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leave.Leave, error) {
	return f.findByIDAndCompanyFn(ctx, companyID, id)
}
func (f *fakeLeaveRepo) Update(ctx context.Context, l *leave.Leave) error { return f.updateFn(ctx, l) }
func (f *fakeLeaveRepo) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}
func (f *fakeLeaveRepo) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	return f.employeeBelongsToCompanyFn(ctx, companyID, employeeID)
}
func (f *fakeLeaveRepo) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	return f.hasOverlappingPeriodFn(ctx, companyID, employeeID, startDate, endDate, excludeID)
}

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	actorID := uuid.New().String()

	var saved leave.Leave
	repo := &fakeLeaveRepo{}
	repo.withTxFn = func(tx *sql.Tx) leave.Repository { return repo }
	repo.employeeBelongsToCompanyFn = func(ctx context.Context, companyID, employeeID string) (bool, error) {
		return true, nil
	}
	repo.hasOverlappingPeriodFn = func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
		return false, nil
	}
	repo.createFn = func(ctx context.Context, l *leave.Leave) error { saved = *l; return nil }

	svc := leave.NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), companyID, actorID, leave.CreateLeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leave.TypeAnnual,
		StartDate:  "2025-03-10",
		EndDate:    "2025-03-12",
		Reason:     "family trip",
	})
	assert.NoError(t, err)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, 3, resp.TotalDays)
	assert.Equal(t, leave.StatusPending, saved.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_Overlap(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeLeaveRepo{}
	repo.withTxFn = func(tx *sql.Tx) leave.Repository { return repo }
	repo.employeeBelongsToCompanyFn = func(ctx context.Context, companyID, employeeID string) (bool, error) {
		return true, nil
	}
	repo.hasOverlappingPeriodFn = func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
		return true, nil
	}

	svc := leave.NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.New().String(), uuid.New().String(), leave.CreateLeaveRequest{
		EmployeeID: uuid.New().String(),
		LeaveType:  leave.TypeSick,
		StartDate:  "2025-03-10",
		EndDate:    "2025-03-12",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_StatusTransitions(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	actorID := uuid.New().String()
	ctx := context.Background()

	current := &leave.Leave{ID: uuid.New(), Status: leave.StatusPending}
	repo := &fakeLeaveRepo{}
	repo.withTxFn = func(tx *sql.Tx) leave.Repository { return repo }
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.Leave, error) {
		cp := *current
		return &cp, nil
	}
	repo.updateFn = func(ctx context.Context, l *leave.Leave) error { current = l; return nil }

	svc := leave.NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Submit(ctx, companyID, actorID, current.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, leave.StatusSubmitted, resp.Status)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.Approve(ctx, companyID, actorID, current.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	assert.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, actorID, *resp.ApprovedBy)

	// Approved is terminal: no further transition is allowed.
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Cancel(ctx, companyID, actorID, current.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Reject_RequiresReason(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeLeaveRepo{}
	repo.withTxFn = func(tx *sql.Tx) leave.Repository { return repo }
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.Leave, error) {
		return &leave.Leave{ID: uuid.New(), Status: leave.StatusSubmitted}, nil
	}

	svc := leave.NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Reject(context.Background(), uuid.New().String(), uuid.New().String(), uuid.New().String(), "")
	assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Reject(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var updated leave.Leave
	repo := &fakeLeaveRepo{}
	repo.withTxFn = func(tx *sql.Tx) leave.Repository { return repo }
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.Leave, error) {
		return &leave.Leave{ID: uuid.New(), Status: leave.StatusSubmitted}, nil
	}
	repo.updateFn = func(ctx context.Context, l *leave.Leave) error { updated = *l; return nil }

	svc := leave.NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Reject(context.Background(), uuid.New().String(), uuid.New().String(), uuid.New().String(), "insufficient balance")
	assert.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Status)
	assert.NotNil(t, updated.RejectionReason)
	assert.Equal(t, "insufficient balance", *updated.RejectionReason)
	assert.Nil(t, updated.ApprovedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Cancel_FromPending(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeLeaveRepo{}
	repo.withTxFn = func(tx *sql.Tx) leave.Repository { return repo }
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.Leave, error) {
		return &leave.Leave{ID: uuid.New(), Status: leave.StatusPending}, nil
	}
	repo.updateFn = func(ctx context.Context, l *leave.Leave) error { return nil }

	svc := leave.NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Cancel(context.Background(), uuid.New().String(), uuid.New().String(), uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, leave.StatusCanceled, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
