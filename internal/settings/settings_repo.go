package settings

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByCompany(ctx context.Context, companyID string) (*PayrollSettings, error)
	Upsert(ctx context.Context, s *PayrollSettings) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) FindByCompany(ctx context.Context, companyID string) (*PayrollSettings, error) {
	var s PayrollSettings
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&s).Error
	return &s, err
}

func (r *repository) Upsert(ctx context.Context, s *PayrollSettings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"tax_rate", "insurance_rate", "pay_period_days", "updated_by", "updated_at",
			}),
		}).
		Create(s).Error
}
