package salarystructure

import (
	structureerrors "workzen/internal/salarystructure/errors"
)

// Default allocation percentages applied when an employee has no stored
// structure. Basic, standard and fixed allowance are percentages of the
// monthly wage; HRA, bonus, LTA and PF are percentages of basic salary.
const (
	DefaultBasicPercent    = 50.0
	DefaultHRAPercent      = 50.0
	DefaultStandardPercent = 16.67
	DefaultBonusPercent    = 8.33
	DefaultLTAPercent      = 8.33
	DefaultFixedPercent    = 11.67
	DefaultPFPercent       = 12.0

	// Flat statutory deduction, not percentage based.
	DefaultProfessionalTax = 200.0
)

// Editable component fields. Percent edits resolve against the component's
// base: monthly wage for basic/standard/fixed, basic salary for the rest.
const (
	FieldMonthWage          = "month_wage"
	FieldBasicSalary        = "basic_salary"
	FieldHouseRentAllowance = "house_rent_allowance"
	FieldStandardAllowance  = "standard_allowance"
	FieldPerformanceBonus   = "performance_bonus"
	FieldTravelAllowance    = "travel_allowance"
	FieldFixedAllowance     = "fixed_allowance"
	FieldPFEmployee         = "pf_employee"
	FieldPFEmployer         = "pf_employer"
	FieldProfessionalTax    = "professional_tax"
	FieldTDS                = "tds"
	FieldOtherDeductions    = "other_deductions"
)

// SalaryComponents is the full earning/deduction breakdown. Every amount is
// paired with its percent except the flat deductions at the bottom.
type SalaryComponents struct {
	MonthWage  float64 `json:"month_wage"`
	YearlyWage float64 `json:"yearly_wage"`

	BasicSalary        float64 `json:"basic_salary"`
	BasicSalaryPercent float64 `json:"basic_salary_percent"`

	HouseRentAllowance float64 `json:"house_rent_allowance"`
	HRAPercent         float64 `json:"hra_percent"`

	StandardAllowance        float64 `json:"standard_allowance"`
	StandardAllowancePercent float64 `json:"standard_allowance_percent"`

	PerformanceBonus        float64 `json:"performance_bonus"`
	PerformanceBonusPercent float64 `json:"performance_bonus_percent"`

	TravelAllowance float64 `json:"travel_allowance"`
	LTAPercent      float64 `json:"lta_percent"`

	FixedAllowance        float64 `json:"fixed_allowance"`
	FixedAllowancePercent float64 `json:"fixed_allowance_percent"`

	GrossSalary float64 `json:"gross_salary"`

	PFEmployee        float64 `json:"pf_employee"`
	PFEmployeePercent float64 `json:"pf_employee_percent"`
	PFEmployer        float64 `json:"pf_employer"`
	PFEmployerPercent float64 `json:"pf_employer_percent"`

	ProfessionalTax float64 `json:"professional_tax"`
	TDS             float64 `json:"tds"`
	OtherDeductions float64 `json:"other_deductions"`

	TotalDeductions float64 `json:"total_deductions"`
	NetSalary       float64 `json:"net_salary"`
}

// ComponentEdit carries exactly one side of an amount/percent pair.
type ComponentEdit struct {
	Amount  *float64 `json:"amount"`
	Percent *float64 `json:"percent"`
}

// DeriveDefault builds the standard component set for a flat monthly wage.
// Fixed allowance uses its flat default percentage here; the residual rule
// only kicks in on subsequent wage/basic edits.
func DeriveDefault(monthWage float64) SalaryComponents {
	c := SalaryComponents{
		MonthWage:                monthWage,
		BasicSalaryPercent:       DefaultBasicPercent,
		HRAPercent:               DefaultHRAPercent,
		StandardAllowancePercent: DefaultStandardPercent,
		PerformanceBonusPercent:  DefaultBonusPercent,
		LTAPercent:               DefaultLTAPercent,
		FixedAllowancePercent:    DefaultFixedPercent,
		PFEmployeePercent:        DefaultPFPercent,
		PFEmployerPercent:        DefaultPFPercent,
		ProfessionalTax:          DefaultProfessionalTax,
	}

	c.BasicSalary = amountOf(c.BasicSalaryPercent, monthWage)
	c.HouseRentAllowance = amountOf(c.HRAPercent, c.BasicSalary)
	c.StandardAllowance = amountOf(c.StandardAllowancePercent, monthWage)
	c.PerformanceBonus = amountOf(c.PerformanceBonusPercent, c.BasicSalary)
	c.TravelAllowance = amountOf(c.LTAPercent, c.BasicSalary)
	c.FixedAllowance = amountOf(c.FixedAllowancePercent, monthWage)
	c.PFEmployee = amountOf(c.PFEmployeePercent, c.BasicSalary)
	c.PFEmployer = amountOf(c.PFEmployerPercent, c.BasicSalary)

	recalcAggregates(&c)
	return c
}

// RecomputeFromWage re-derives the component set for a new monthly wage,
// keeping every stored percent. Fixed allowance becomes the residual of the
// wage after the other earning components, clamped at zero.
func RecomputeFromWage(current SalaryComponents, newMonthWage float64) (SalaryComponents, error) {
	if newMonthWage < 0 {
		return current, structureerrors.ErrNegativeAmount
	}

	c := current
	c.MonthWage = newMonthWage
	c.BasicSalary = amountOf(c.BasicSalaryPercent, newMonthWage)
	c.StandardAllowance = amountOf(c.StandardAllowancePercent, newMonthWage)
	cascadeFromBasic(&c)
	return c, nil
}

// RecomputeFromComponent applies a single amount-or-percent edit and keeps
// the pair consistent against the component's base. Validation failures
// return the prior set unchanged.
func RecomputeFromComponent(current SalaryComponents, field string, edit ComponentEdit) (SalaryComponents, error) {
	if (edit.Amount == nil) == (edit.Percent == nil) {
		return current, structureerrors.ErrAmountOrPercentRequired
	}
	if edit.Amount != nil && *edit.Amount < 0 {
		return current, structureerrors.ErrNegativeAmount
	}
	if edit.Percent != nil && (*edit.Percent < 0 || *edit.Percent > 100) {
		return current, structureerrors.ErrPercentOutOfRange
	}

	c := current

	switch field {
	case FieldMonthWage:
		if edit.Amount == nil {
			return current, structureerrors.ErrFlatComponentPercent
		}
		return RecomputeFromWage(current, *edit.Amount)

	case FieldBasicSalary:
		if edit.Amount != nil {
			c.BasicSalary = *edit.Amount
			c.BasicSalaryPercent = percentOf(c.BasicSalary, c.MonthWage)
		} else {
			c.BasicSalaryPercent = *edit.Percent
			c.BasicSalary = amountOf(c.BasicSalaryPercent, c.MonthWage)
		}
		cascadeFromBasic(&c)
		return c, nil

	case FieldHouseRentAllowance:
		c.HouseRentAllowance, c.HRAPercent = syncPair(edit, c.BasicSalary)
	case FieldPerformanceBonus:
		c.PerformanceBonus, c.PerformanceBonusPercent = syncPair(edit, c.BasicSalary)
	case FieldTravelAllowance:
		c.TravelAllowance, c.LTAPercent = syncPair(edit, c.BasicSalary)
	case FieldPFEmployee:
		c.PFEmployee, c.PFEmployeePercent = syncPair(edit, c.BasicSalary)
	case FieldPFEmployer:
		c.PFEmployer, c.PFEmployerPercent = syncPair(edit, c.BasicSalary)

	case FieldStandardAllowance:
		c.StandardAllowance, c.StandardAllowancePercent = syncPair(edit, c.MonthWage)
	case FieldFixedAllowance:
		c.FixedAllowance, c.FixedAllowancePercent = syncPair(edit, c.MonthWage)

	case FieldProfessionalTax, FieldTDS, FieldOtherDeductions:
		if edit.Amount == nil {
			return current, structureerrors.ErrFlatComponentPercent
		}
		switch field {
		case FieldProfessionalTax:
			c.ProfessionalTax = *edit.Amount
		case FieldTDS:
			c.TDS = *edit.Amount
		case FieldOtherDeductions:
			c.OtherDeductions = *edit.Amount
		}

	default:
		return current, structureerrors.ErrUnknownComponent
	}

	recalcAggregates(&c)
	return c, nil
}

// cascadeFromBasic recomputes every basic-relative component from the
// current basic salary using its stored percent, then absorbs the
// allocation slack into fixed allowance.
func cascadeFromBasic(c *SalaryComponents) {
	c.HouseRentAllowance = amountOf(c.HRAPercent, c.BasicSalary)
	c.PerformanceBonus = amountOf(c.PerformanceBonusPercent, c.BasicSalary)
	c.TravelAllowance = amountOf(c.LTAPercent, c.BasicSalary)
	c.PFEmployee = amountOf(c.PFEmployeePercent, c.BasicSalary)
	c.PFEmployer = amountOf(c.PFEmployerPercent, c.BasicSalary)

	residual := c.MonthWage - (c.BasicSalary + c.HouseRentAllowance +
		c.StandardAllowance + c.PerformanceBonus + c.TravelAllowance)
	if residual < 0 {
		// Allocation overshoots the wage: clamp, gross may fall short of
		// the wage in this edge case.
		residual = 0
	}
	c.FixedAllowance = residual
	c.FixedAllowancePercent = percentOf(residual, c.MonthWage)

	recalcAggregates(c)
}

func recalcAggregates(c *SalaryComponents) {
	c.YearlyWage = c.MonthWage * 12
	c.GrossSalary = c.BasicSalary + c.HouseRentAllowance + c.StandardAllowance +
		c.PerformanceBonus + c.TravelAllowance + c.FixedAllowance
	c.TotalDeductions = c.PFEmployee + c.ProfessionalTax + c.TDS + c.OtherDeductions

	if c.GrossSalary <= 0 {
		c.NetSalary = 0
		return
	}
	c.NetSalary = c.GrossSalary - c.TotalDeductions
}

func syncPair(edit ComponentEdit, base float64) (amount, percent float64) {
	if edit.Amount != nil {
		return *edit.Amount, percentOf(*edit.Amount, base)
	}
	return amountOf(*edit.Percent, base), *edit.Percent
}

func percentOf(amount, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return amount / base * 100
}

func amountOf(percent, base float64) float64 {
	return base * percent / 100
}
