package salarystructure_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"workzen/internal/salarystructure"
	structureerrors "workzen/internal/salarystructure/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	actorID := uuid.New().String()

	var saved salarystructure.SalaryStructure
	repo := &fakeStructureRepo{}
	repo.withTxFn = func(tx *sql.Tx) salarystructure.Repository { return repo }
	repo.employeeBelongsToCompanyFn = func(ctx context.Context, companyID, employeeID string) (bool, error) {
		return true, nil
	}
	repo.createFn = func(ctx context.Context, s *salarystructure.SalaryStructure) error { saved = *s; return nil }

	svc := salarystructure.NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), companyID, actorID, salarystructure.CreateSalaryStructureRequest{
		EmployeeID:    employeeID,
		MonthWage:     75000,
		EffectiveFrom: "2025-03-01",
	})
	assert.NoError(t, err)
	assert.Equal(t, employeeID, resp.EmployeeID)
	assert.InDelta(t, 37500.0, saved.BasicSalary, tolerance)
	assert.InDelta(t, 79052.5, resp.Components.NetSalary, tolerance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_EmployeeNotInCompany(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeStructureRepo{}
	repo.withTxFn = func(tx *sql.Tx) salarystructure.Repository { return repo }
	repo.employeeBelongsToCompanyFn = func(ctx context.Context, companyID, employeeID string) (bool, error) {
		return false, nil
	}

	svc := salarystructure.NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.New().String(), uuid.New().String(), salarystructure.CreateSalaryStructureRequest{
		EmployeeID:    uuid.New().String(),
		MonthWage:     50000,
		EffectiveFrom: "2025-03-01",
	})
	assert.ErrorIs(t, err, structureerrors.ErrEmployeeNotInCompany)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_InvalidWindow(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeStructureRepo{}
	repo.withTxFn = func(tx *sql.Tx) salarystructure.Repository { return repo }

	svc := salarystructure.NewService(db, repo)

	to := "2025-01-01"
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), uuid.New().String(), uuid.New().String(), salarystructure.CreateSalaryStructureRequest{
		EmployeeID:    uuid.New().String(),
		MonthWage:     50000,
		EffectiveFrom: "2025-03-01",
		EffectiveTo:   &to,
	})
	assert.ErrorIs(t, err, structureerrors.ErrInvalidValidityWindow)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ResolveComponents_PrefersStoredStructure(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	c := salarystructure.DeriveDefault(90000)
	stored := &salarystructure.SalaryStructure{
		ID:                 uuid.New(),
		MonthWage:          c.MonthWage,
		BasicSalary:        c.BasicSalary,
		BasicSalaryPercent: c.BasicSalaryPercent,
		HouseRentAllowance: c.HouseRentAllowance,
		GrossSalary:        c.GrossSalary,
		NetSalary:          c.NetSalary,
	}

	repo := &fakeStructureRepo{}
	repo.findApplicableFn = func(ctx context.Context, companyID, employeeID string, asOf time.Time) (*salarystructure.SalaryStructure, error) {
		return stored, nil
	}

	svc := salarystructure.NewService(db, repo)
	components, err := svc.ResolveComponents(context.Background(), uuid.New().String(), uuid.New().String(), time.Now())
	assert.NoError(t, err)
	assert.InDelta(t, 45000.0, components.BasicSalary, tolerance)
}

func TestService_ResolveComponents_FallsBackToFlatWage(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeStructureRepo{}
	repo.findApplicableFn = func(ctx context.Context, companyID, employeeID string, asOf time.Time) (*salarystructure.SalaryStructure, error) {
		return nil, gorm.ErrRecordNotFound
	}
	repo.employeeMonthlyWageFn = func(ctx context.Context, companyID, employeeID string) (float64, error) {
		return 60000, nil
	}

	svc := salarystructure.NewService(db, repo)
	components, err := svc.ResolveComponents(context.Background(), uuid.New().String(), uuid.New().String(), time.Now())
	assert.NoError(t, err)
	assert.InDelta(t, 30000.0, components.BasicSalary, tolerance)
}

func TestService_ResolveComponents_NoBasis(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeStructureRepo{}
	repo.findApplicableFn = func(ctx context.Context, companyID, employeeID string, asOf time.Time) (*salarystructure.SalaryStructure, error) {
		return nil, gorm.ErrRecordNotFound
	}
	repo.employeeMonthlyWageFn = func(ctx context.Context, companyID, employeeID string) (float64, error) {
		return 0, nil
	}

	svc := salarystructure.NewService(db, repo)
	_, err := svc.ResolveComponents(context.Background(), uuid.New().String(), uuid.New().String(), time.Now())
	assert.ErrorIs(t, err, structureerrors.ErrNoSalaryBasis)
}

func TestService_CreateDefault(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	var saved salarystructure.SalaryStructure
	repo := &fakeStructureRepo{}
	repo.withTxFn = func(tx *sql.Tx) salarystructure.Repository { return repo }
	repo.employeeMonthlyWageFn = func(ctx context.Context, companyID, employeeID string) (float64, error) {
		return 75000, nil
	}
	repo.createFn = func(ctx context.Context, s *salarystructure.SalaryStructure) error { saved = *s; return nil }

	svc := salarystructure.NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CreateDefault(context.Background(), companyID, employeeID, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, "2025-04-01", resp.EffectiveFrom)
	assert.InDelta(t, 37500.0, saved.BasicSalary, tolerance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
