package settings_test

import (
	"context"
	"database/sql"
	"testing"

	"workzen/internal/settings"
	settingserrors "workzen/internal/settings/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSettingsRepo struct {
	withTxFn        func(tx *sql.Tx) settings.Repository
	findByCompanyFn func(ctx context.Context, companyID string) (*settings.PayrollSettings, error)
	upsertFn        func(ctx context.Context, s *settings.PayrollSettings) error
}

func (f *fakeSettingsRepo) WithTx(tx *sql.Tx) settings.Repository { return f.withTxFn(tx) }
func (f *fakeSettingsRepo) FindByCompany(ctx context.Context, companyID string) (*settings.PayrollSettings, error) {
	return f.findByCompanyFn(ctx, companyID)
}
func (f *fakeSettingsRepo) Upsert(ctx context.Context, s *settings.PayrollSettings) error {
	return f.upsertFn(ctx, s)
}

func TestService_Get_FallsBackToDefaults(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	repo := &fakeSettingsRepo{}
	repo.findByCompanyFn = func(ctx context.Context, companyID string) (*settings.PayrollSettings, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := settings.NewService(db, repo)
	resp, err := svc.Get(context.Background(), companyID)
	assert.NoError(t, err)
	assert.Equal(t, companyID, resp.CompanyID)
	assert.Equal(t, 0.0, resp.TaxRate)
	assert.Equal(t, 0.0, resp.InsuranceRate)
	assert.Equal(t, settings.DefaultPayPeriodDays, resp.PayPeriodDays)
}

func TestService_Upsert_CreatesRowWhenMissing(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	actorID := uuid.New().String()

	var saved settings.PayrollSettings
	repo := &fakeSettingsRepo{}
	repo.withTxFn = func(tx *sql.Tx) settings.Repository { return repo }
	repo.findByCompanyFn = func(ctx context.Context, companyID string) (*settings.PayrollSettings, error) {
		return nil, gorm.ErrRecordNotFound
	}
	repo.upsertFn = func(ctx context.Context, s *settings.PayrollSettings) error { saved = *s; return nil }

	svc := settings.NewService(db, repo)

	tax := 12.5
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Upsert(context.Background(), companyID, actorID, settings.UpsertSettingsRequest{TaxRate: &tax})
	assert.NoError(t, err)
	assert.Equal(t, 12.5, resp.TaxRate)
	assert.Equal(t, settings.DefaultPayPeriodDays, resp.PayPeriodDays)
	assert.Equal(t, actorID, saved.UpdatedBy.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Upsert_PartialUpdateKeepsOtherFields(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyUUID := uuid.New()
	existing := settings.PayrollSettings{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		TaxRate:       10,
		InsuranceRate: 2,
		PayPeriodDays: 30,
	}

	repo := &fakeSettingsRepo{}
	repo.withTxFn = func(tx *sql.Tx) settings.Repository { return repo }
	repo.findByCompanyFn = func(ctx context.Context, companyID string) (*settings.PayrollSettings, error) {
		cp := existing
		return &cp, nil
	}
	repo.upsertFn = func(ctx context.Context, s *settings.PayrollSettings) error { return nil }

	svc := settings.NewService(db, repo)

	insurance := 3.5
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Upsert(context.Background(), companyUUID.String(), uuid.New().String(), settings.UpsertSettingsRequest{InsuranceRate: &insurance})
	assert.NoError(t, err)
	assert.Equal(t, 10.0, resp.TaxRate)
	assert.Equal(t, 3.5, resp.InsuranceRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Upsert_RejectsOutOfRangeRates(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeSettingsRepo{}
	repo.withTxFn = func(tx *sql.Tx) settings.Repository { return repo }
	repo.findByCompanyFn = func(ctx context.Context, companyID string) (*settings.PayrollSettings, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := settings.NewService(db, repo)

	bad := 101.0
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Upsert(context.Background(), uuid.New().String(), uuid.New().String(), settings.UpsertSettingsRequest{TaxRate: &bad})
	assert.ErrorIs(t, err, settingserrors.ErrInvalidTaxRate)

	days := 40
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Upsert(context.Background(), uuid.New().String(), uuid.New().String(), settings.UpsertSettingsRequest{PayPeriodDays: &days})
	assert.ErrorIs(t, err, settingserrors.ErrInvalidPayPeriodDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}
