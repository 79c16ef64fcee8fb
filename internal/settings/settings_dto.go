package settings

type UpsertSettingsRequest struct {
	TaxRate       *float64 `json:"tax_rate"`
	InsuranceRate *float64 `json:"insurance_rate"`
	PayPeriodDays *int     `json:"pay_period_days"`
}

type SettingsResponse struct {
	CompanyID     string  `json:"company_id"`
	TaxRate       float64 `json:"tax_rate"`
	InsuranceRate float64 `json:"insurance_rate"`
	PayPeriodDays int     `json:"pay_period_days"`
}
