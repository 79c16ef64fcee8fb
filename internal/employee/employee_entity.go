package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "ACTIVE"
	StatusInactive   = "INACTIVE"
	StatusTerminated = "TERMINATED"
)

type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID `gorm:"type:uuid;index"`
	EmployeeCode string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_code"`
	FullName     string
	Email        string `gorm:"uniqueIndex:uq_employee_email"`
	Phone        string
	Department   string `gorm:"type:varchar(100)"`
	Position     string `gorm:"type:varchar(100)"`
	HireDate     time.Time
	Status       string `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`

	// Flat monthly wage, the fallback when no salary structure exists.
	MonthlySalary float64 `gorm:"type:numeric;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
