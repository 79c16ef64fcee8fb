package salarystructure_test

import (
	"testing"

	"workzen/internal/salarystructure"
	structureerrors "workzen/internal/salarystructure/errors"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-6

func f(v float64) *float64 { return &v }

func TestDeriveDefault(t *testing.T) {
	c := salarystructure.DeriveDefault(75000)

	assert.InDelta(t, 37500.0, c.BasicSalary, tolerance)
	assert.InDelta(t, 18750.0, c.HouseRentAllowance, tolerance)
	assert.InDelta(t, 12502.5, c.StandardAllowance, tolerance)
	assert.InDelta(t, 3123.75, c.PerformanceBonus, tolerance)
	assert.InDelta(t, 3123.75, c.TravelAllowance, tolerance)
	assert.InDelta(t, 8752.5, c.FixedAllowance, tolerance)
	assert.InDelta(t, 83752.5, c.GrossSalary, tolerance)
	assert.InDelta(t, 4500.0, c.PFEmployee, tolerance)
	assert.InDelta(t, 4500.0, c.PFEmployer, tolerance)
	assert.InDelta(t, 200.0, c.ProfessionalTax, tolerance)
	assert.InDelta(t, 4700.0, c.TotalDeductions, tolerance)
	assert.InDelta(t, 79052.5, c.NetSalary, tolerance)
	assert.InDelta(t, 900000.0, c.YearlyWage, tolerance)
}

func TestRecomputeFromWage_KeepsPercents(t *testing.T) {
	c := salarystructure.DeriveDefault(75000)

	out, err := salarystructure.RecomputeFromWage(c, 90000)
	assert.NoError(t, err)

	assert.InDelta(t, 45000.0, out.BasicSalary, tolerance)
	assert.InDelta(t, 22500.0, out.HouseRentAllowance, tolerance)
	assert.InDelta(t, 15003.0, out.StandardAllowance, tolerance)
	assert.InDelta(t, 3748.5, out.PerformanceBonus, tolerance)
	assert.InDelta(t, 3748.5, out.TravelAllowance, tolerance)

	// Fixed allowance absorbs whatever the other earnings leave of the wage.
	residual := 90000 - (out.BasicSalary + out.HouseRentAllowance +
		out.StandardAllowance + out.PerformanceBonus + out.TravelAllowance)
	assert.InDelta(t, residual, out.FixedAllowance, tolerance)
	assert.InDelta(t, 90000.0, out.GrossSalary, tolerance)
	assert.InDelta(t, 5400.0, out.PFEmployee, tolerance)
}

func TestRecomputeFromWage_Negative(t *testing.T) {
	c := salarystructure.DeriveDefault(75000)

	out, err := salarystructure.RecomputeFromWage(c, -1)
	assert.ErrorIs(t, err, structureerrors.ErrNegativeAmount)
	assert.Equal(t, c, out)
}

func TestRecomputeFromComponent_BasicAmountEdit(t *testing.T) {
	c := salarystructure.DeriveDefault(60000)

	out, err := salarystructure.RecomputeFromComponent(c, salarystructure.FieldBasicSalary, salarystructure.ComponentEdit{Amount: f(36000)})
	assert.NoError(t, err)

	assert.InDelta(t, 36000.0, out.BasicSalary, tolerance)
	assert.InDelta(t, 60.0, out.BasicSalaryPercent, tolerance)
	// Basic-relative components follow the new basic.
	assert.InDelta(t, 18000.0, out.HouseRentAllowance, tolerance)
	assert.InDelta(t, 36000*0.0833, out.PerformanceBonus, tolerance)
	assert.InDelta(t, 36000*0.12, out.PFEmployee, tolerance)
	// Standard allowance stays wage-relative.
	assert.InDelta(t, 60000*0.1667, out.StandardAllowance, tolerance)
}

func TestRecomputeFromComponent_PercentEdit(t *testing.T) {
	c := salarystructure.DeriveDefault(60000)

	out, err := salarystructure.RecomputeFromComponent(c, salarystructure.FieldHouseRentAllowance, salarystructure.ComponentEdit{Percent: f(40)})
	assert.NoError(t, err)

	assert.InDelta(t, 40.0, out.HRAPercent, tolerance)
	assert.InDelta(t, 12000.0, out.HouseRentAllowance, tolerance)
}

func TestRecomputeFromComponent_OvershootClampsFixed(t *testing.T) {
	c := salarystructure.DeriveDefault(60000)

	out, err := salarystructure.RecomputeFromComponent(c, salarystructure.FieldBasicSalary, salarystructure.ComponentEdit{Percent: f(90)})
	assert.NoError(t, err)

	assert.InDelta(t, 0.0, out.FixedAllowance, tolerance)
	assert.True(t, out.GrossSalary > out.MonthWage)
}

func TestRecomputeFromComponent_RoundTripIsIdempotent(t *testing.T) {
	c := salarystructure.DeriveDefault(60000)

	// Editing the amount derives a percent; feeding that percent back must
	// reproduce the same amount, and vice versa.
	byAmount, err := salarystructure.RecomputeFromComponent(c, salarystructure.FieldHouseRentAllowance,
		salarystructure.ComponentEdit{Amount: f(21000)})
	assert.NoError(t, err)

	byPercent, err := salarystructure.RecomputeFromComponent(byAmount, salarystructure.FieldHouseRentAllowance,
		salarystructure.ComponentEdit{Percent: f(byAmount.HRAPercent)})
	assert.NoError(t, err)

	assert.InDelta(t, byAmount.HouseRentAllowance, byPercent.HouseRentAllowance, tolerance)
	assert.InDelta(t, byAmount.HRAPercent, byPercent.HRAPercent, tolerance)
	assert.InDelta(t, byAmount.GrossSalary, byPercent.GrossSalary, tolerance)
	assert.InDelta(t, byAmount.NetSalary, byPercent.NetSalary, tolerance)

	back, err := salarystructure.RecomputeFromComponent(byPercent, salarystructure.FieldHouseRentAllowance,
		salarystructure.ComponentEdit{Amount: f(byPercent.HouseRentAllowance)})
	assert.NoError(t, err)
	assert.InDelta(t, byPercent.HRAPercent, back.HRAPercent, tolerance)

	// Same round trip on a wage-relative component.
	basicAmount, err := salarystructure.RecomputeFromComponent(c, salarystructure.FieldBasicSalary,
		salarystructure.ComponentEdit{Amount: f(33000)})
	assert.NoError(t, err)

	basicPercent, err := salarystructure.RecomputeFromComponent(basicAmount, salarystructure.FieldBasicSalary,
		salarystructure.ComponentEdit{Percent: f(basicAmount.BasicSalaryPercent)})
	assert.NoError(t, err)

	assert.InDelta(t, basicAmount.BasicSalary, basicPercent.BasicSalary, tolerance)
	assert.InDelta(t, basicAmount.HouseRentAllowance, basicPercent.HouseRentAllowance, tolerance)
	assert.InDelta(t, basicAmount.PFEmployee, basicPercent.PFEmployee, tolerance)
}

func TestRecomputeFromComponent_Validation(t *testing.T) {
	c := salarystructure.DeriveDefault(60000)

	_, err := salarystructure.RecomputeFromComponent(c, salarystructure.FieldBasicSalary, salarystructure.ComponentEdit{})
	assert.ErrorIs(t, err, structureerrors.ErrAmountOrPercentRequired)

	_, err = salarystructure.RecomputeFromComponent(c, salarystructure.FieldBasicSalary, salarystructure.ComponentEdit{Amount: f(100), Percent: f(10)})
	assert.ErrorIs(t, err, structureerrors.ErrAmountOrPercentRequired)

	_, err = salarystructure.RecomputeFromComponent(c, salarystructure.FieldBasicSalary, salarystructure.ComponentEdit{Amount: f(-5)})
	assert.ErrorIs(t, err, structureerrors.ErrNegativeAmount)

	_, err = salarystructure.RecomputeFromComponent(c, salarystructure.FieldBasicSalary, salarystructure.ComponentEdit{Percent: f(120)})
	assert.ErrorIs(t, err, structureerrors.ErrPercentOutOfRange)

	_, err = salarystructure.RecomputeFromComponent(c, salarystructure.FieldProfessionalTax, salarystructure.ComponentEdit{Percent: f(10)})
	assert.ErrorIs(t, err, structureerrors.ErrFlatComponentPercent)

	_, err = salarystructure.RecomputeFromComponent(c, "unknown_field", salarystructure.ComponentEdit{Amount: f(10)})
	assert.ErrorIs(t, err, structureerrors.ErrUnknownComponent)
}

func TestRecomputeFromComponent_FlatDeductions(t *testing.T) {
	c := salarystructure.DeriveDefault(60000)

	out, err := salarystructure.RecomputeFromComponent(c, salarystructure.FieldTDS, salarystructure.ComponentEdit{Amount: f(1500)})
	assert.NoError(t, err)
	assert.InDelta(t, 1500.0, out.TDS, tolerance)
	assert.InDelta(t, c.TotalDeductions+1500, out.TotalDeductions, tolerance)
	assert.InDelta(t, c.NetSalary-1500, out.NetSalary, tolerance)
}
