package salarystructure

import (
	"context"
	"database/sql"
	"time"

	"workzen/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_structure_repo.go -destination=mock/salary_structure_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, structure *SalaryStructure) error
	FindAllByCompany(ctx context.Context, companyID string) ([]SalaryStructure, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]SalaryStructure, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalaryStructure, error)
	FindApplicable(ctx context.Context, companyID, employeeID string, asOf time.Time) (*SalaryStructure, error)
	EmployeeBelongsToCompany(ctx context.Context, companyID string, employeeID string) (bool, error)
	EmployeeMonthlyWage(ctx context.Context, companyID string, employeeID string) (float64, error)
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

func (r *repository) Create(ctx context.Context, structure *SalaryStructure) error {
	return r.db.WithContext(ctx).Create(structure).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]SalaryStructure, error) {
	var structures []SalaryStructure
	err := r.db.WithContext(ctx).
		Table("salary_structures").
		Select("salary_structures.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = salary_structures.employee_id").
		Where("salary_structures.company_id = ?", companyID).
		Order("employees.full_name ASC, salary_structures.effective_from DESC").
		Scan(&structures).Error
	return structures, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]SalaryStructure, error) {
	var structures []SalaryStructure
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("effective_from DESC").
		Find(&structures).Error
	return structures, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalaryStructure, error) {
	var structure SalaryStructure
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&structure, "id = ?", id).Error
	return &structure, err
}

// FindApplicable returns the most recent structure whose validity window
// covers asOf. The query narrows to windows already started; the coverage
// and precedence choice is ApplicableAsOf, shared with the resolver tests.
func (r *repository) FindApplicable(ctx context.Context, companyID, employeeID string, asOf time.Time) (*SalaryStructure, error) {
	day := asOf.Format("2006-01-02")

	var candidates []SalaryStructure
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("effective_from <= ?", day).
		Order("effective_from DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	structure := ApplicableAsOf(candidates, asOf)
	if structure == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return structure, nil
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID string, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) EmployeeMonthlyWage(ctx context.Context, companyID string, employeeID string) (float64, error) {
	var row struct {
		MonthlySalary float64
	}
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("monthly_salary").
		Where("id = ?", employeeID).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		Take(&row).Error
	if err != nil {
		return 0, err
	}
	return row.MonthlySalary, nil
}
