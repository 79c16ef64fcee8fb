package payrun

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft      = "DRAFT"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

const (
	PayslipDraft     = "DRAFT"
	PayslipComputed  = "COMPUTED"
	PayslipValidated = "VALIDATED"
)

type Payrun struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_payruns_company_status"`

	PeriodStart time.Time `gorm:"type:date;not null"`
	PeriodEnd   time.Time `gorm:"type:date;not null"`
	PayDate     time.Time `gorm:"type:date;not null"`

	Status         string  `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_payruns_company_status"`
	TotalEmployees int     `gorm:"type:int;not null;default:0"`
	ProcessedCount int     `gorm:"type:int;not null;default:0"`
	FailedCount    int     `gorm:"type:int;not null;default:0"`
	TotalAmount    float64 `gorm:"type:numeric;not null;default:0"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Payrun) TableName() string {
	return "payruns"
}

type Payslip struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	PayrunID   uuid.UUID `gorm:"type:uuid;not null;index:idx_payslip_run_employee,unique"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_payslip_run_employee,unique"`

	// Earnings
	BaseSalary float64 `gorm:"type:numeric;not null;default:0"`
	Overtime   float64 `gorm:"type:numeric;not null;default:0"`
	Bonus      float64 `gorm:"type:numeric;not null;default:0"`
	Allowances float64 `gorm:"type:numeric;not null;default:0"`

	// Deductions
	Tax             float64 `gorm:"type:numeric;not null;default:0"`
	Insurance       float64 `gorm:"type:numeric;not null;default:0"`
	PfEmployee      float64 `gorm:"type:numeric;not null;default:0"`
	ProfessionalTax float64 `gorm:"type:numeric;not null;default:0"`
	OtherDeductions float64 `gorm:"type:numeric;not null;default:0"`

	GrossPay        float64 `gorm:"type:numeric;not null;default:0"`
	TotalDeductions float64 `gorm:"type:numeric;not null;default:0"`
	NetPay          float64 `gorm:"type:numeric;not null;default:0"`

	TotalDays       int `gorm:"type:int;not null;default:0"`
	PayableDays     int `gorm:"type:int;not null;default:0"`
	UnpaidLeaveDays int `gorm:"type:int;not null;default:0"`
	AbsentDays      int `gorm:"type:int;not null;default:0"`

	Status string `gorm:"type:varchar(20);not null;default:'DRAFT'"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Payslip) TableName() string {
	return "payslips"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
