package salarystructure

import (
	"time"

	"github.com/google/uuid"
)

// SalaryStructure is a versioned compensation record. Historical rows are
// never mutated; a newer effective_from supersedes lookup for later payslips.
type SalaryStructure struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_structures_company_employee"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_structures_company_employee;uniqueIndex:uq_structure_employee_effective"`

	EffectiveFrom time.Time  `gorm:"type:date;not null;uniqueIndex:uq_structure_employee_effective"`
	EffectiveTo   *time.Time `gorm:"type:date"`

	MonthWage float64 `gorm:"type:numeric(14,2);not null"`

	BasicSalary              float64 `gorm:"type:numeric(14,2);not null"`
	BasicSalaryPercent       float64 `gorm:"type:numeric(7,4);not null"`
	HouseRentAllowance       float64 `gorm:"type:numeric(14,2);not null"`
	HRAPercent               float64 `gorm:"column:hra_percent;type:numeric(7,4);not null"`
	StandardAllowance        float64 `gorm:"type:numeric(14,2);not null"`
	StandardAllowancePercent float64 `gorm:"type:numeric(7,4);not null"`
	PerformanceBonus         float64 `gorm:"type:numeric(14,2);not null"`
	PerformanceBonusPercent  float64 `gorm:"type:numeric(7,4);not null"`
	TravelAllowance          float64 `gorm:"type:numeric(14,2);not null"`
	LTAPercent               float64 `gorm:"column:lta_percent;type:numeric(7,4);not null"`
	FixedAllowance           float64 `gorm:"type:numeric(14,2);not null"`
	FixedAllowancePercent    float64 `gorm:"type:numeric(7,4);not null"`

	PFEmployee        float64 `gorm:"column:pf_employee;type:numeric(14,2);not null"`
	PFEmployeePercent float64 `gorm:"column:pf_employee_percent;type:numeric(7,4);not null"`
	PFEmployer        float64 `gorm:"column:pf_employer;type:numeric(14,2);not null"`
	PFEmployerPercent float64 `gorm:"column:pf_employer_percent;type:numeric(7,4);not null"`
	ProfessionalTax   float64 `gorm:"type:numeric(14,2);not null"`
	TDS               float64 `gorm:"column:tds;type:numeric(14,2);not null;default:0"`
	OtherDeductions   float64 `gorm:"type:numeric(14,2);not null;default:0"`

	GrossSalary     float64 `gorm:"type:numeric(14,2);not null"`
	TotalDeductions float64 `gorm:"type:numeric(14,2);not null"`
	NetSalary       float64 `gorm:"type:numeric(14,2);not null"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	EmployeeName string `gorm:"->;-:migration"`
}

func (SalaryStructure) TableName() string {
	return "salary_structures"
}

// Components extracts the calculator view of the stored structure.
func (s *SalaryStructure) Components() SalaryComponents {
	c := SalaryComponents{
		MonthWage:                s.MonthWage,
		BasicSalary:              s.BasicSalary,
		BasicSalaryPercent:       s.BasicSalaryPercent,
		HouseRentAllowance:       s.HouseRentAllowance,
		HRAPercent:               s.HRAPercent,
		StandardAllowance:        s.StandardAllowance,
		StandardAllowancePercent: s.StandardAllowancePercent,
		PerformanceBonus:         s.PerformanceBonus,
		PerformanceBonusPercent:  s.PerformanceBonusPercent,
		TravelAllowance:          s.TravelAllowance,
		LTAPercent:               s.LTAPercent,
		FixedAllowance:           s.FixedAllowance,
		FixedAllowancePercent:    s.FixedAllowancePercent,
		PFEmployee:               s.PFEmployee,
		PFEmployeePercent:        s.PFEmployeePercent,
		PFEmployer:               s.PFEmployer,
		PFEmployerPercent:        s.PFEmployerPercent,
		ProfessionalTax:          s.ProfessionalTax,
		TDS:                      s.TDS,
		OtherDeductions:          s.OtherDeductions,
	}
	recalcAggregates(&c)
	return c
}

func (s *SalaryStructure) applyComponents(c SalaryComponents) {
	s.MonthWage = c.MonthWage
	s.BasicSalary = c.BasicSalary
	s.BasicSalaryPercent = c.BasicSalaryPercent
	s.HouseRentAllowance = c.HouseRentAllowance
	s.HRAPercent = c.HRAPercent
	s.StandardAllowance = c.StandardAllowance
	s.StandardAllowancePercent = c.StandardAllowancePercent
	s.PerformanceBonus = c.PerformanceBonus
	s.PerformanceBonusPercent = c.PerformanceBonusPercent
	s.TravelAllowance = c.TravelAllowance
	s.LTAPercent = c.LTAPercent
	s.FixedAllowance = c.FixedAllowance
	s.FixedAllowancePercent = c.FixedAllowancePercent
	s.PFEmployee = c.PFEmployee
	s.PFEmployeePercent = c.PFEmployeePercent
	s.PFEmployer = c.PFEmployer
	s.PFEmployerPercent = c.PFEmployerPercent
	s.ProfessionalTax = c.ProfessionalTax
	s.TDS = c.TDS
	s.OtherDeductions = c.OtherDeductions
	s.GrossSalary = c.GrossSalary
	s.TotalDeductions = c.TotalDeductions
	s.NetSalary = c.NetSalary
}
