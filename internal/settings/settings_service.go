package settings

import (
	"context"
	"database/sql"
	"errors"

	settingserrors "workzen/internal/settings/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, companyID string) (SettingsResponse, error)
	Upsert(ctx context.Context, companyID, actorID string, req UpsertSettingsRequest) (SettingsResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("settings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Get(ctx context.Context, companyID string) (SettingsResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SettingsResponse{}, settingserrors.ErrInvalidCompanyID
	}

	row, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return mapToSettingsResponse(Defaults(companyUUID)), nil
		}
		return SettingsResponse{}, err
	}
	return mapToSettingsResponse(*row), nil
}

func (s *service) Upsert(ctx context.Context, companyID, actorID string, req UpsertSettingsRequest) (SettingsResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SettingsResponse{}, settingserrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SettingsResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByCompany(ctx, companyID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return SettingsResponse{}, err
		}
		defaults := Defaults(companyUUID)
		row = &defaults
		row.ID = uuid.New()
	}

	if req.TaxRate != nil {
		if *req.TaxRate < 0 || *req.TaxRate > 100 {
			return SettingsResponse{}, settingserrors.ErrInvalidTaxRate
		}
		row.TaxRate = *req.TaxRate
	}
	if req.InsuranceRate != nil {
		if *req.InsuranceRate < 0 || *req.InsuranceRate > 100 {
			return SettingsResponse{}, settingserrors.ErrInvalidInsuranceRate
		}
		row.InsuranceRate = *req.InsuranceRate
	}
	if req.PayPeriodDays != nil {
		if *req.PayPeriodDays < 1 || *req.PayPeriodDays > 31 {
			return SettingsResponse{}, settingserrors.ErrInvalidPayPeriodDays
		}
		row.PayPeriodDays = *req.PayPeriodDays
	}
	if actorUUID, parseErr := uuid.Parse(actorID); parseErr == nil {
		row.UpdatedBy = actorUUID
	}

	if err := qtx.Upsert(ctx, row); err != nil {
		s.logger.Error("upsert payroll settings failed",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return SettingsResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SettingsResponse{}, err
	}

	s.logger.Info("payroll settings updated",
		zap.String("company_id", companyID),
		zap.Float64("tax_rate", row.TaxRate),
		zap.Float64("insurance_rate", row.InsuranceRate),
		zap.Int("pay_period_days", row.PayPeriodDays),
	)
	return mapToSettingsResponse(*row), nil
}

func mapToSettingsResponse(s PayrollSettings) SettingsResponse {
	return SettingsResponse{
		CompanyID:     s.CompanyID.String(),
		TaxRate:       s.TaxRate,
		InsuranceRate: s.InsuranceRate,
		PayPeriodDays: s.PayPeriodDays,
	}
}
