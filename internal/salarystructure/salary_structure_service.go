package salarystructure

import (
	"context"
	"database/sql"
	"errors"
	"time"

	structureerrors "workzen/internal/salarystructure/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_structure_service.go -destination=mock/salary_structure_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateSalaryStructureRequest) (SalaryStructureResponse, error)
	GetAll(ctx context.Context, companyID string) ([]SalaryStructureResponse, error)
	GetByEmployee(ctx context.Context, companyID, employeeID string) ([]SalaryStructureResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SalaryStructureResponse, error)
	Preview(ctx context.Context, req PreviewSalaryStructureRequest) (SalaryComponents, error)
	Resolve(ctx context.Context, companyID, employeeID string, asOf time.Time) (ResolveSalaryResponse, error)
	ResolveComponents(ctx context.Context, companyID, employeeID string, asOf time.Time) (SalaryComponents, error)
	CreateDefault(ctx context.Context, companyID, employeeID string, effectiveFrom time.Time) (SalaryStructureResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver *Resolver
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarystructure.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarystructure.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		resolver: NewResolver(repo),
		logger:   l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreateSalaryStructureRequest,
) (SalaryStructureResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create structure begin tx failed", zap.Error(err))
		return SalaryStructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SalaryStructureResponse{}, structureerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SalaryStructureResponse{}, structureerrors.ErrInvalidEmployeeID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SalaryStructureResponse{}, structureerrors.ErrInvalidEmployeeID
	}

	effectiveFrom, err := parseDate(req.EffectiveFrom)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	var effectiveTo *time.Time
	if req.EffectiveTo != nil && *req.EffectiveTo != "" {
		to, err := parseDate(*req.EffectiveTo)
		if err != nil {
			return SalaryStructureResponse{}, err
		}
		if effectiveFrom.After(to) {
			return SalaryStructureResponse{}, structureerrors.ErrInvalidValidityWindow
		}
		effectiveTo = &to
	}

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("create structure employee company check failed", zap.Error(err))
		return SalaryStructureResponse{}, err
	}
	if !belongs {
		return SalaryStructureResponse{}, structureerrors.ErrEmployeeNotInCompany
	}

	components := DeriveDefault(req.MonthWage)
	for _, override := range req.Overrides {
		components, err = RecomputeFromComponent(components, override.Component, ComponentEdit{
			Amount:  override.Amount,
			Percent: override.Percent,
		})
		if err != nil {
			s.logger.Warn("create structure override rejected",
				zap.String("component", override.Component),
				zap.Error(err),
			)
			return SalaryStructureResponse{}, err
		}
	}

	structure := &SalaryStructure{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
		CreatedBy:     createdByUUID,
	}
	structure.applyComponents(components)

	if err := qtx.Create(ctx, structure); err != nil {
		s.logger.Error("create structure persist failed", zap.Error(err))
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create structure commit failed", zap.Error(err))
		return SalaryStructureResponse{}, err
	}

	s.logger.Info("create structure success",
		zap.String("structure_id", structure.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("effective_from", req.EffectiveFrom),
	)

	return mapToResponse(*structure), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]SalaryStructureResponse, error) {
	structures, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(structures), nil
}

func (s *service) GetByEmployee(ctx context.Context, companyID, employeeID string) ([]SalaryStructureResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, structureerrors.ErrInvalidEmployeeID
	}
	structures, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(structures), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SalaryStructureResponse, error) {
	structure, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*structure), nil
}

// Preview runs a single edit through the cascade engine. No storage access:
// the caller owns the editing session state.
func (s *service) Preview(ctx context.Context, req PreviewSalaryStructureRequest) (SalaryComponents, error) {
	return RecomputeFromComponent(req.Components, req.Component, ComponentEdit{
		Amount:  req.Amount,
		Percent: req.Percent,
	})
}

func (s *service) Resolve(ctx context.Context, companyID, employeeID string, asOf time.Time) (ResolveSalaryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return ResolveSalaryResponse{}, structureerrors.ErrInvalidEmployeeID
	}

	structure, err := s.resolver.ResolveAsOf(ctx, companyID, employeeID, asOf)
	if err != nil {
		return ResolveSalaryResponse{}, err
	}
	if structure != nil {
		id := structure.ID.String()
		from := structure.EffectiveFrom.Format("2006-01-02")
		return ResolveSalaryResponse{
			Source:        SourceStructure,
			StructureID:   &id,
			EffectiveFrom: &from,
			Components:    structure.Components(),
		}, nil
	}

	components, err := s.deriveFromFlatWage(ctx, companyID, employeeID)
	if err != nil {
		return ResolveSalaryResponse{}, err
	}
	return ResolveSalaryResponse{
		Source:     SourceDerived,
		Components: components,
	}, nil
}

// ResolveComponents is the payroll-facing contract: stored structure first,
// default derivation from the flat wage second, ErrNoSalaryBasis when
// neither exists.
func (s *service) ResolveComponents(ctx context.Context, companyID, employeeID string, asOf time.Time) (SalaryComponents, error) {
	structure, err := s.resolver.ResolveAsOf(ctx, companyID, employeeID, asOf)
	if err != nil {
		return SalaryComponents{}, err
	}
	if structure != nil {
		return structure.Components(), nil
	}
	return s.deriveFromFlatWage(ctx, companyID, employeeID)
}

// CreateDefault persists the default derivation for an employee's flat wage.
// Invoked by the employee lifecycle consumer when a new employee appears.
func (s *service) CreateDefault(ctx context.Context, companyID, employeeID string, effectiveFrom time.Time) (SalaryStructureResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SalaryStructureResponse{}, structureerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return SalaryStructureResponse{}, structureerrors.ErrInvalidEmployeeID
	}

	wage, err := qtx.EmployeeMonthlyWage(ctx, companyID, employeeID)
	if err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	structure := &SalaryStructure{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		EffectiveFrom: effectiveFrom,
		CreatedBy:     employeeUUID,
	}
	structure.applyComponents(DeriveDefault(wage))

	if err := qtx.Create(ctx, structure); err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryStructureResponse{}, err
	}

	return mapToResponse(*structure), nil
}

func (s *service) deriveFromFlatWage(ctx context.Context, companyID, employeeID string) (SalaryComponents, error) {
	wage, err := s.repo.EmployeeMonthlyWage(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryComponents{}, structureerrors.ErrNoSalaryBasis
		}
		return SalaryComponents{}, err
	}
	if wage <= 0 {
		return SalaryComponents{}, structureerrors.ErrNoSalaryBasis
	}
	return DeriveDefault(wage), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, structureerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(structure SalaryStructure) SalaryStructureResponse {
	resp := SalaryStructureResponse{
		ID:            structure.ID.String(),
		CompanyID:     structure.CompanyID.String(),
		EmployeeID:    structure.EmployeeID.String(),
		EmployeeName:  structure.EmployeeName,
		EffectiveFrom: structure.EffectiveFrom.Format("2006-01-02"),
		Components:    structure.Components(),
	}
	if structure.EffectiveTo != nil {
		v := structure.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &v
	}
	return resp
}

func mapToListResponse(structures []SalaryStructure) []SalaryStructureResponse {
	resp := make([]SalaryStructureResponse, len(structures))
	for i, structure := range structures {
		resp[i] = mapToResponse(structure)
	}
	return resp
}
