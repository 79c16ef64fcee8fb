package payrun_test

import (
	"testing"
	"time"

	"workzen/internal/leave"
	"workzen/internal/payrun"
	"workzen/internal/salarystructure"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-6

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeWorkedDays_FullAttendance(t *testing.T) {
	// 2025-03-03 .. 2025-03-09: Mon-Fri attended, Sat/Sun weekend.
	start, end := day(2025, 3, 3), day(2025, 3, 9)

	var attendance []payrun.AttendanceDay
	for d := start; d.Weekday() != time.Saturday; d = d.AddDate(0, 0, 1) {
		attendance = append(attendance, payrun.AttendanceDay{Date: d, Status: "PRESENT", HoursWorked: 8})
	}

	b := payrun.ComputeWorkedDays(start, end, attendance, nil)
	assert.Equal(t, 7, b.TotalDays)
	assert.Equal(t, 7, b.PayableDays)
	assert.Equal(t, 0, b.UnpaidLeaveDays)
	assert.Equal(t, 0, b.AbsentDays)
}

func TestComputeWorkedDays_WeekendsPayableWithoutAttendance(t *testing.T) {
	// Sat + Sun only, no attendance rows at all.
	b := payrun.ComputeWorkedDays(day(2025, 3, 8), day(2025, 3, 9), nil, nil)
	assert.Equal(t, 2, b.TotalDays)
	assert.Equal(t, 2, b.PayableDays)
	assert.Equal(t, 0, b.AbsentDays)
}

func TestComputeWorkedDays_UnpaidLeave(t *testing.T) {
	start, end := day(2025, 3, 3), day(2025, 3, 7)

	leaves := []payrun.LeaveWindow{{
		StartDate: day(2025, 3, 4),
		EndDate:   day(2025, 3, 5),
		LeaveType: leave.TypeUnpaid,
	}}
	attendance := []payrun.AttendanceDay{
		{Date: day(2025, 3, 3), Status: "PRESENT"},
		{Date: day(2025, 3, 6), Status: "PRESENT"},
		{Date: day(2025, 3, 7), Status: "PRESENT"},
	}

	b := payrun.ComputeWorkedDays(start, end, attendance, leaves)
	assert.Equal(t, 5, b.TotalDays)
	assert.Equal(t, 3, b.PayableDays)
	assert.Equal(t, 2, b.UnpaidLeaveDays)
	assert.Equal(t, 0, b.AbsentDays)
}

func TestComputeWorkedDays_PaidLeaveStaysPayable(t *testing.T) {
	start, end := day(2025, 3, 3), day(2025, 3, 7)

	leaves := []payrun.LeaveWindow{{
		StartDate: day(2025, 3, 3),
		EndDate:   day(2025, 3, 7),
		LeaveType: leave.TypeAnnual,
	}}

	b := payrun.ComputeWorkedDays(start, end, nil, leaves)
	assert.Equal(t, 5, b.PayableDays)
	assert.Equal(t, 0, b.AbsentDays)
}

func TestComputeWorkedDays_UncoveredWeekdayIsAbsent(t *testing.T) {
	// Single weekday, no attendance, no leave.
	b := payrun.ComputeWorkedDays(day(2025, 3, 5), day(2025, 3, 5), nil, nil)
	assert.Equal(t, 1, b.TotalDays)
	assert.Equal(t, 0, b.PayableDays)
	assert.Equal(t, 1, b.AbsentDays)
}

func TestComputeWorkedDays_AttendanceBeatsLeave(t *testing.T) {
	// An attended day inside an unpaid leave window still counts as payable.
	leaves := []payrun.LeaveWindow{{
		StartDate: day(2025, 3, 5),
		EndDate:   day(2025, 3, 5),
		LeaveType: leave.TypeUnpaid,
	}}
	attendance := []payrun.AttendanceDay{{Date: day(2025, 3, 5), Status: "PRESENT"}}

	b := payrun.ComputeWorkedDays(day(2025, 3, 5), day(2025, 3, 5), attendance, leaves)
	assert.Equal(t, 1, b.PayableDays)
	assert.Equal(t, 0, b.UnpaidLeaveDays)
}

func TestBuildPayslip_FullMonthNoProration(t *testing.T) {
	c := salarystructure.DeriveDefault(75000)
	b := payrun.WorkedDaysBreakdown{TotalDays: 30, PayableDays: 30}

	p := payrun.BuildPayslip(c, &b, payrun.DeductionRates{TaxRate: 10, InsuranceRate: 2})

	assert.InDelta(t, 37500.0, p.BaseSalary, tolerance)
	assert.InDelta(t, 3123.75, p.Bonus, tolerance)
	assert.InDelta(t, 18750+12502.5+3123.75+8752.5, p.Allowances, tolerance)
	assert.InDelta(t, 83752.5, p.GrossPay, tolerance)
	assert.InDelta(t, 8375.25, p.Tax, tolerance)
	assert.InDelta(t, 1675.05, p.Insurance, tolerance)
	assert.InDelta(t, 4500.0, p.PfEmployee, tolerance)
	assert.InDelta(t, 200.0, p.ProfessionalTax, tolerance)
	assert.InDelta(t, p.GrossPay-p.TotalDeductions, p.NetPay, tolerance)
	assert.InDelta(t, p.GrossPay, b.TotalAmount, tolerance)
}

func TestBuildPayslip_ProratesBaseOnly(t *testing.T) {
	c := salarystructure.DeriveDefault(75000)
	b := payrun.WorkedDaysBreakdown{TotalDays: 30, PayableDays: 15, UnpaidLeaveDays: 15}

	p := payrun.BuildPayslip(c, &b, payrun.DeductionRates{})

	assert.InDelta(t, 18750.0, p.BaseSalary, tolerance)
	// Fixed monthly allowances are not prorated.
	assert.InDelta(t, 18750+12502.5+3123.75+8752.5, p.Allowances, tolerance)
	assert.InDelta(t, 3123.75, p.Bonus, tolerance)
	// The breakdown carries the prorated gross as its payable amount.
	assert.InDelta(t, p.GrossPay, b.TotalAmount, tolerance)
}

func TestBuildPayslip_ZeroRates(t *testing.T) {
	c := salarystructure.DeriveDefault(60000)
	b := payrun.WorkedDaysBreakdown{TotalDays: 30, PayableDays: 30}

	p := payrun.BuildPayslip(c, &b, payrun.DeductionRates{})

	assert.InDelta(t, 0.0, p.Tax, tolerance)
	assert.InDelta(t, 0.0, p.Insurance, tolerance)
	assert.InDelta(t, c.PFEmployee+c.ProfessionalTax, p.TotalDeductions, tolerance)
}
