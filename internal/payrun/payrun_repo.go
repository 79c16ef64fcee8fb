package payrun

import (
	"context"
	"database/sql"
	"time"

	"workzen/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmployeeRow is the minimal projection the batch needs per employee.
type EmployeeRow struct {
	ID       string
	FullName string
}

//go:generate mockgen -source=payrun_repo.go -destination=mock/payrun_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payrun) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Payrun, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payrun, error)
	Update(ctx context.Context, p *Payrun) error
	Delete(ctx context.Context, companyID, id string) error
	HasOverlappingPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time, excludeID *string) (bool, error)

	ListActiveEmployees(ctx context.Context, companyID string) ([]EmployeeRow, error)
	AttendanceDays(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) ([]AttendanceDay, error)
	ApprovedLeaves(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) ([]LeaveWindow, error)
	DeductionRates(ctx context.Context, companyID string) (DeductionRates, error)

	UpsertPayslip(ctx context.Context, slip *Payslip) error
	FindPayslipsByRun(ctx context.Context, companyID, payrunID string) ([]Payslip, error)
	FindPayslipByIDAndCompany(ctx context.Context, companyID, id string) (*Payslip, error)
	UpdatePayslip(ctx context.Context, slip *Payslip) error
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

func (r *repository) Create(ctx context.Context, p *Payrun) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Payrun, error) {
	var runs []Payrun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("period_start DESC").
		Find(&runs).Error
	return runs, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payrun, error) {
	var p Payrun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *Payrun) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Payrun{}, "id = ?", id).Error
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Payrun{}).
		Scopes(tenant.Scope(companyID)).
		Where("status <> ?", StatusFailed).
		Where("NOT (period_end < ? OR period_start > ?)", periodStart, periodEnd)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) ListActiveEmployees(ctx context.Context, companyID string) ([]EmployeeRow, error) {
	var rows []EmployeeRow
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id, full_name").
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", "ACTIVE").
		Where("deleted_at IS NULL").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) AttendanceDays(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) ([]AttendanceDay, error) {
	var rows []AttendanceDay
	err := r.db.WithContext(ctx).
		Table("attendances").
		Select("attendance_date AS date, status, hours_worked").
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date BETWEEN ? AND ?", periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02")).
		Where("deleted_at IS NULL").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ApprovedLeaves(ctx context.Context, companyID, employeeID string, periodStart, periodEnd time.Time) ([]LeaveWindow, error) {
	var rows []LeaveWindow
	err := r.db.WithContext(ctx).
		Table("leaves").
		Select("start_date, end_date, leave_type").
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", "APPROVED").
		Where("NOT (end_date < ? OR start_date > ?)", periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02")).
		Where("deleted_at IS NULL").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) DeductionRates(ctx context.Context, companyID string) (DeductionRates, error) {
	var row struct {
		TaxRate       float64
		InsuranceRate float64
	}
	res := r.db.WithContext(ctx).
		Table("payroll_settings").
		Select("tax_rate, insurance_rate").
		Scopes(tenant.Scope(companyID)).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return DeductionRates{}, res.Error
	}
	// No stored settings means zero rates.
	return DeductionRates{TaxRate: row.TaxRate, InsuranceRate: row.InsuranceRate}, nil
}

func (r *repository) UpsertPayslip(ctx context.Context, slip *Payslip) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "payrun_id"}, {Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"base_salary", "overtime", "bonus", "allowances",
				"tax", "insurance", "pf_employee", "professional_tax", "other_deductions",
				"gross_pay", "total_deductions", "net_pay",
				"total_days", "payable_days", "unpaid_leave_days", "absent_days",
				"status", "updated_at",
			}),
		}).
		Create(slip).Error
}

func (r *repository) FindPayslipsByRun(ctx context.Context, companyID, payrunID string) ([]Payslip, error) {
	var slips []Payslip
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID)).
		Where("payrun_id = ?", payrunID).
		Find(&slips).Error
	return slips, err
}

func (r *repository) FindPayslipByIDAndCompany(ctx context.Context, companyID, id string) (*Payslip, error) {
	var slip Payslip
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID)).
		First(&slip, "id = ?", id).Error
	return &slip, err
}

func (r *repository) UpdatePayslip(ctx context.Context, slip *Payslip) error {
	return r.db.WithContext(ctx).Save(slip).Error
}
