package payrun

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"workzen/internal/events"
	"workzen/internal/messaging/kafka"
	payrunerrors "workzen/internal/payrun/errors"
	"workzen/internal/salarystructure"
	"workzen/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SalaryResolver is the compensation contract the batch depends on. It is
// implemented by the salarystructure service.
type SalaryResolver interface {
	ResolveComponents(ctx context.Context, companyID, employeeID string, asOf time.Time) (salarystructure.SalaryComponents, error)
}

//go:generate mockgen -source=payrun_service.go -destination=mock/payrun_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreatePayrunRequest) (PayrunResponse, error)
	GetAll(ctx context.Context, companyID string) ([]PayrunResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrunResponse, error)
	Process(ctx context.Context, companyID, actorID, id string) (PayrunResponse, error)
	Run(ctx context.Context, companyID, payrunID string) (PayrunResponse, error)
	GetPayslips(ctx context.Context, companyID, payrunID string) ([]PayslipResponse, error)
	GetPayslip(ctx context.Context, companyID, payslipID string) (PayslipResponse, error)
	ValidatePayslip(ctx context.Context, companyID, payslipID string) (PayslipResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	resolver SalaryResolver
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, resolver SalaryResolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("payrun.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrun.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, resolver: resolver, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreatePayrunRequest) (PayrunResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PayrunResponse{}, payrunerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrunResponse{}, payrunerrors.ErrInvalidActorID
	}

	periodStart, err := parseDate(req.PeriodStart)
	if err != nil {
		return PayrunResponse{}, err
	}
	periodEnd, err := parseDate(req.PeriodEnd)
	if err != nil {
		return PayrunResponse{}, err
	}
	payDate, err := parseDate(req.PayDate)
	if err != nil {
		return PayrunResponse{}, err
	}
	if periodStart.After(periodEnd) {
		return PayrunResponse{}, payrunerrors.ErrInvalidPeriod
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, periodStart, periodEnd, nil)
	if err != nil {
		return PayrunResponse{}, err
	}
	if overlap {
		return PayrunResponse{}, payrunerrors.ErrPayrunOverlap
	}

	run := &Payrun{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		PayDate:     payDate,
		Status:      StatusDraft,
		CreatedBy:   actorUUID,
	}

	if err := qtx.Create(ctx, run); err != nil {
		s.logger.Error("create payrun persist failed", zap.Error(err))
		return PayrunResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrunResponse{}, err
	}

	s.logger.Info("payrun created",
		zap.String("payrun_id", run.ID.String()),
		zap.String("company_id", companyID),
		zap.String("period_start", req.PeriodStart),
		zap.String("period_end", req.PeriodEnd),
	)
	return mapToPayrunResponse(*run), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]PayrunResponse, error) {
	runs, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := make([]PayrunResponse, len(runs))
	for i, r := range runs {
		resp[i] = mapToPayrunResponse(r)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayrunResponse, error) {
	run, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrunResponse{}, payrunerrors.ErrPayrunNotFound
		}
		return PayrunResponse{}, err
	}
	return mapToPayrunResponse(*run), nil
}

// Process flips the run to PROCESSING and enqueues the batch through the
// outbox, both inside one transaction. The actual assembly happens in the
// consumer.
func (s *service) Process(ctx context.Context, companyID, actorID, id string) (PayrunResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	outboxTx := s.outbox.WithTx(tx)

	run, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrunResponse{}, payrunerrors.ErrPayrunNotFound
		}
		return PayrunResponse{}, err
	}
	if run.Status != StatusDraft {
		return PayrunResponse{}, payrunerrors.ErrInvalidStatusTransition
	}

	run.Status = StatusProcessing
	if err := qtx.Update(ctx, run); err != nil {
		return PayrunResponse{}, err
	}

	event := events.PayrunProcessRequestedEvent{
		EventType:   "payrun.process.requested",
		PayrunID:    run.ID.String(),
		CompanyID:   companyID,
		RequestedBy: actorID,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return PayrunResponse{}, err
	}

	if err := outboxTx.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payrun",
		AggregateID:   run.ID.String(),
		EventType:     event.EventType,
		Topic:         events.PayrunProcessRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("process payrun outbox persist failed",
			zap.String("payrun_id", run.ID.String()),
			zap.Error(err),
		)
		return PayrunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrunResponse{}, err
	}

	s.logger.Info("payrun processing requested",
		zap.String("payrun_id", run.ID.String()),
		zap.String("company_id", companyID),
	)
	return mapToPayrunResponse(*run), nil
}

// Run performs the assembly for one payrun. Each employee is isolated: a
// failure marks that employee failed and the loop continues. The run ends
// COMPLETED when at least one payslip was produced, FAILED otherwise.
func (s *service) Run(ctx context.Context, companyID, payrunID string) (PayrunResponse, error) {
	run, err := s.repo.FindByIDAndCompany(ctx, companyID, payrunID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrunResponse{}, payrunerrors.ErrPayrunNotFound
		}
		return PayrunResponse{}, err
	}
	if run.Status != StatusProcessing {
		return PayrunResponse{}, payrunerrors.ErrInvalidStatusTransition
	}

	employees, err := s.repo.ListActiveEmployees(ctx, companyID)
	if err != nil {
		return s.failRun(ctx, run, err)
	}
	rates, err := s.repo.DeductionRates(ctx, companyID)
	if err != nil {
		return s.failRun(ctx, run, err)
	}

	run.TotalEmployees = len(employees)
	run.ProcessedCount = 0
	run.FailedCount = 0
	run.TotalAmount = 0

	for _, emp := range employees {
		amounts, breakdown, err := s.assembleOne(ctx, run, emp.ID, rates)
		if err != nil {
			run.FailedCount++
			s.logger.Error("payslip assembly failed",
				zap.String("payrun_id", run.ID.String()),
				zap.String("employee_id", emp.ID),
				zap.Error(err),
			)
			continue
		}

		slip := &Payslip{
			ID:              uuid.New(),
			CompanyID:       run.CompanyID,
			PayrunID:        run.ID,
			EmployeeID:      uuid.MustParse(emp.ID),
			BaseSalary:      amounts.BaseSalary,
			Overtime:        amounts.Overtime,
			Bonus:           amounts.Bonus,
			Allowances:      amounts.Allowances,
			Tax:             amounts.Tax,
			Insurance:       amounts.Insurance,
			PfEmployee:      amounts.PfEmployee,
			ProfessionalTax: amounts.ProfessionalTax,
			OtherDeductions: amounts.OtherDeductions,
			GrossPay:        amounts.GrossPay,
			TotalDeductions: amounts.TotalDeductions,
			NetPay:          amounts.NetPay,
			TotalDays:       breakdown.TotalDays,
			PayableDays:     breakdown.PayableDays,
			UnpaidLeaveDays: breakdown.UnpaidLeaveDays,
			AbsentDays:      breakdown.AbsentDays,
			Status:          PayslipComputed,
		}

		if err := s.repo.UpsertPayslip(ctx, slip); err != nil {
			run.FailedCount++
			s.logger.Error("payslip persist failed",
				zap.String("payrun_id", run.ID.String()),
				zap.String("employee_id", emp.ID),
				zap.Error(err),
			)
			continue
		}

		run.ProcessedCount++
		run.TotalAmount += amounts.NetPay
	}

	if run.TotalEmployees > 0 && run.ProcessedCount == 0 {
		run.Status = StatusFailed
	} else {
		run.Status = StatusCompleted
	}

	if err := s.repo.Update(ctx, run); err != nil {
		return PayrunResponse{}, err
	}

	s.logger.Info("payrun finished",
		zap.String("payrun_id", run.ID.String()),
		zap.String("status", run.Status),
		zap.Int("total_employees", run.TotalEmployees),
		zap.Int("processed", run.ProcessedCount),
		zap.Int("failed", run.FailedCount),
		zap.Float64("total_amount", run.TotalAmount),
	)
	return mapToPayrunResponse(*run), nil
}

func (s *service) assembleOne(ctx context.Context, run *Payrun, employeeID string, rates DeductionRates) (PayslipAmounts, WorkedDaysBreakdown, error) {
	components, err := s.resolver.ResolveComponents(ctx, run.CompanyID.String(), employeeID, run.PeriodEnd)
	if err != nil {
		return PayslipAmounts{}, WorkedDaysBreakdown{}, err
	}

	attendance, err := s.repo.AttendanceDays(ctx, run.CompanyID.String(), employeeID, run.PeriodStart, run.PeriodEnd)
	if err != nil {
		return PayslipAmounts{}, WorkedDaysBreakdown{}, err
	}
	leaves, err := s.repo.ApprovedLeaves(ctx, run.CompanyID.String(), employeeID, run.PeriodStart, run.PeriodEnd)
	if err != nil {
		return PayslipAmounts{}, WorkedDaysBreakdown{}, err
	}

	breakdown := ComputeWorkedDays(run.PeriodStart, run.PeriodEnd, attendance, leaves)
	amounts := BuildPayslip(components, &breakdown, rates)
	return amounts, breakdown, nil
}

func (s *service) failRun(ctx context.Context, run *Payrun, cause error) (PayrunResponse, error) {
	s.logger.Error("payrun failed",
		zap.String("payrun_id", run.ID.String()),
		zap.Error(cause),
	)
	run.Status = StatusFailed
	if err := s.repo.Update(ctx, run); err != nil {
		return PayrunResponse{}, err
	}
	return mapToPayrunResponse(*run), cause
}

func (s *service) GetPayslips(ctx context.Context, companyID, payrunID string) ([]PayslipResponse, error) {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, payrunID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrunerrors.ErrPayrunNotFound
		}
		return nil, err
	}

	slips, err := s.repo.FindPayslipsByRun(ctx, companyID, payrunID)
	if err != nil {
		return nil, err
	}
	resp := make([]PayslipResponse, len(slips))
	for i, slip := range slips {
		resp[i] = mapToPayslipResponse(slip)
	}
	return resp, nil
}

func (s *service) GetPayslip(ctx context.Context, companyID, payslipID string) (PayslipResponse, error) {
	slip, err := s.repo.FindPayslipByIDAndCompany(ctx, companyID, payslipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, payrunerrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}
	return mapToPayslipResponse(*slip), nil
}

func (s *service) ValidatePayslip(ctx context.Context, companyID, payslipID string) (PayslipResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	slip, err := qtx.FindPayslipByIDAndCompany(ctx, companyID, payslipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, payrunerrors.ErrPayslipNotFound
		}
		return PayslipResponse{}, err
	}
	if slip.Status == PayslipValidated {
		return PayslipResponse{}, payrunerrors.ErrPayslipValidated
	}
	if slip.Status != PayslipComputed {
		return PayslipResponse{}, payrunerrors.ErrInvalidStatusTransition
	}

	slip.Status = PayslipValidated
	if err := qtx.UpdatePayslip(ctx, slip); err != nil {
		return PayslipResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	s.logger.Info("payslip validated",
		zap.String("payslip_id", payslipID),
		zap.String("company_id", companyID),
	)
	return mapToPayslipResponse(*slip), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrunerrors.ErrPayrunNotFound
		}
		return err
	}
	if run.Status != StatusDraft {
		return payrunerrors.ErrPayrunNotDraft
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}
	return tx.Commit()
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrunerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToPayrunResponse(p Payrun) PayrunResponse {
	return PayrunResponse{
		ID:             p.ID.String(),
		CompanyID:      p.CompanyID.String(),
		PeriodStart:    p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:      p.PeriodEnd.Format("2006-01-02"),
		PayDate:        p.PayDate.Format("2006-01-02"),
		Status:         p.Status,
		TotalEmployees: p.TotalEmployees,
		ProcessedCount: p.ProcessedCount,
		FailedCount:    p.FailedCount,
		TotalAmount:    p.TotalAmount,
		CreatedBy:      p.CreatedBy.String(),
	}
}

func mapToPayslipResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:         p.ID.String(),
		PayrunID:   p.PayrunID.String(),
		EmployeeID: p.EmployeeID.String(),
		Earnings: PayslipEarnings{
			BaseSalary: p.BaseSalary,
			Overtime:   p.Overtime,
			Bonus:      p.Bonus,
			Allowances: p.Allowances,
		},
		Deductions: PayslipDeductions{
			Tax:             p.Tax,
			Insurance:       p.Insurance,
			PfEmployee:      p.PfEmployee,
			ProfessionalTax: p.ProfessionalTax,
			Other:           p.OtherDeductions,
		},
		GrossPay:        p.GrossPay,
		TotalDeductions: p.TotalDeductions,
		NetPay:          p.NetPay,
		TotalDays:       p.TotalDays,
		PayableDays:     p.PayableDays,
		UnpaidLeaveDays: p.UnpaidLeaveDays,
		AbsentDays:      p.AbsentDays,
		Status:          p.Status,
	}
	if p.Employee != nil {
		resp.EmployeeName = p.Employee.FullName
	}
	return resp
}
