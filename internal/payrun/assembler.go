package payrun

import (
	"time"

	"workzen/internal/leave"
	"workzen/internal/salarystructure"
)

// AttendanceDay is the read model the assembler consumes, one row per
// attendance record inside the pay period.
type AttendanceDay struct {
	Date        time.Time
	Status      string
	HoursWorked float64
}

// LeaveWindow is an approved leave covering an inclusive date range.
type LeaveWindow struct {
	StartDate time.Time
	EndDate   time.Time
	LeaveType string
}

// DeductionRates carries the payroll settings the assembler applies on top of
// the salary structure's own deductions.
type DeductionRates struct {
	TaxRate       float64
	InsuranceRate float64
}

// WorkedDaysBreakdown classifies every day of the pay period. Weekends count
// as payable non-working days; a weekday without an attendance record is
// payable only when an approved paid leave covers it.
type WorkedDaysBreakdown struct {
	TotalDays       int
	PayableDays     int
	UnpaidLeaveDays int
	AbsentDays      int

	// Gross amount payable for the period after proration, filled in by
	// BuildPayslip once the salary components are known.
	TotalAmount float64
}

// PayslipAmounts is the computed money side of a payslip before persistence.
type PayslipAmounts struct {
	BaseSalary      float64
	Overtime        float64
	Bonus           float64
	Allowances      float64
	Tax             float64
	Insurance       float64
	PfEmployee      float64
	ProfessionalTax float64
	OtherDeductions float64
	GrossPay        float64
	TotalDeductions float64
	NetPay          float64
}

// ComputeWorkedDays walks the period day by day and classifies each one.
func ComputeWorkedDays(periodStart, periodEnd time.Time, attendance []AttendanceDay, leaves []LeaveWindow) WorkedDaysBreakdown {
	var b WorkedDaysBreakdown

	attended := make(map[string]bool, len(attendance))
	for _, a := range attendance {
		attended[a.Date.Format("2006-01-02")] = true
	}

	for d := truncateToDay(periodStart); !d.After(truncateToDay(periodEnd)); d = d.AddDate(0, 0, 1) {
		b.TotalDays++

		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			b.PayableDays++
			continue
		}

		if attended[d.Format("2006-01-02")] {
			b.PayableDays++
			continue
		}

		if covering := coveringLeave(d, leaves); covering != nil {
			if covering.LeaveType == leave.TypeUnpaid {
				b.UnpaidLeaveDays++
			} else {
				b.PayableDays++
			}
			continue
		}

		b.AbsentDays++
	}

	return b
}

// BuildPayslip combines the resolved salary components with the day breakdown
// and the company deduction rates. Only the base salary is prorated by
// payable days; fixed monthly allowances are paid in full. The breakdown's
// TotalAmount is set to the resulting gross pay.
func BuildPayslip(c salarystructure.SalaryComponents, b *WorkedDaysBreakdown, rates DeductionRates) PayslipAmounts {
	var p PayslipAmounts

	p.BaseSalary = c.BasicSalary
	if b.TotalDays > 0 && b.PayableDays < b.TotalDays {
		p.BaseSalary = c.BasicSalary * float64(b.PayableDays) / float64(b.TotalDays)
	}

	p.Bonus = c.PerformanceBonus
	p.Allowances = c.HouseRentAllowance + c.StandardAllowance + c.TravelAllowance + c.FixedAllowance

	p.GrossPay = p.BaseSalary + p.Overtime + p.Bonus + p.Allowances

	p.Tax = p.GrossPay * rates.TaxRate / 100
	p.Insurance = p.GrossPay * rates.InsuranceRate / 100
	p.PfEmployee = c.PFEmployee
	p.ProfessionalTax = c.ProfessionalTax
	p.OtherDeductions = c.TDS + c.OtherDeductions

	p.TotalDeductions = p.Tax + p.Insurance + p.PfEmployee + p.ProfessionalTax + p.OtherDeductions
	p.NetPay = p.GrossPay - p.TotalDeductions

	b.TotalAmount = p.GrossPay

	return p
}

func coveringLeave(day time.Time, leaves []LeaveWindow) *LeaveWindow {
	for i := range leaves {
		l := &leaves[i]
		if !day.Before(truncateToDay(l.StartDate)) && !day.After(truncateToDay(l.EndDate)) {
			return l
		}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
