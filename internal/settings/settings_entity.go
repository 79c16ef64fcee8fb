package settings

import (
	"time"

	"github.com/google/uuid"
)

const DefaultPayPeriodDays = 30

// PayrollSettings is a per-company singleton row. Missing settings fall back
// to zero rates and a thirty day pay period.
type PayrollSettings struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_settings_company"`
	TaxRate       float64   `gorm:"column:tax_rate;not null;default:0"`
	InsuranceRate float64   `gorm:"column:insurance_rate;not null;default:0"`
	PayPeriodDays int       `gorm:"column:pay_period_days;not null;default:30"`
	UpdatedBy     uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PayrollSettings) TableName() string {
	return "payroll_settings"
}

// Defaults returns the settings applied when a company has no stored row.
func Defaults(companyID uuid.UUID) PayrollSettings {
	return PayrollSettings{
		CompanyID:     companyID,
		TaxRate:       0,
		InsuranceRate: 0,
		PayPeriodDays: DefaultPayPeriodDays,
	}
}
