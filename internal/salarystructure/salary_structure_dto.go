package salarystructure

type ComponentOverride struct {
	Component string   `json:"component" binding:"required"`
	Amount    *float64 `json:"amount"`
	Percent   *float64 `json:"percent"`
}

type CreateSalaryStructureRequest struct {
	EmployeeID    string  `json:"employee_id" binding:"required"`
	EffectiveFrom string  `json:"effective_from" binding:"required"`
	EffectiveTo   *string `json:"effective_to"`
	MonthWage     float64 `json:"month_wage" binding:"required,gt=0"`

	// Optional per-component edits applied on top of the default
	// derivation, in order.
	Overrides []ComponentOverride `json:"overrides"`
}

// PreviewSalaryStructureRequest feeds one form edit through the cascade
// engine without touching storage. The UI is a thin caller of this endpoint.
type PreviewSalaryStructureRequest struct {
	Components SalaryComponents `json:"components"`
	Component  string           `json:"component" binding:"required"`
	Amount     *float64         `json:"amount"`
	Percent    *float64         `json:"percent"`
}

type SalaryStructureResponse struct {
	ID            string           `json:"id"`
	CompanyID     string           `json:"company_id"`
	EmployeeID    string           `json:"employee_id"`
	EmployeeName  string           `json:"employee_name,omitempty"`
	EffectiveFrom string           `json:"effective_from"`
	EffectiveTo   *string          `json:"effective_to,omitempty"`
	Components    SalaryComponents `json:"components"`
}

// ResolveSalaryResponse reports where the components came from: a stored
// structure or the default derivation from the employee's flat wage.
type ResolveSalaryResponse struct {
	Source        string           `json:"source"`
	StructureID   *string          `json:"structure_id,omitempty"`
	EffectiveFrom *string          `json:"effective_from,omitempty"`
	Components    SalaryComponents `json:"components"`
}

const (
	SourceStructure = "structure"
	SourceDerived   = "derived"
)
