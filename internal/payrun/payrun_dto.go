package payrun

type CreatePayrunRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	PayDate     string `json:"pay_date" binding:"required"`
}

type PayrunResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	PeriodStart    string  `json:"period_start"`
	PeriodEnd      string  `json:"period_end"`
	PayDate        string  `json:"pay_date"`
	Status         string  `json:"status"`
	TotalEmployees int     `json:"total_employees"`
	ProcessedCount int     `json:"processed_count"`
	FailedCount    int     `json:"failed_count"`
	TotalAmount    float64 `json:"total_amount"`
	CreatedBy      string  `json:"created_by"`
}

type PayslipEarnings struct {
	BaseSalary float64 `json:"base_salary"`
	Overtime   float64 `json:"overtime"`
	Bonus      float64 `json:"bonus"`
	Allowances float64 `json:"allowances"`
}

type PayslipDeductions struct {
	Tax             float64 `json:"tax"`
	Insurance       float64 `json:"insurance"`
	PfEmployee      float64 `json:"pf_employee"`
	ProfessionalTax float64 `json:"professional_tax"`
	Other           float64 `json:"other"`
}

type PayslipResponse struct {
	ID              string            `json:"id"`
	PayrunID        string            `json:"payrun_id"`
	EmployeeID      string            `json:"employee_id"`
	EmployeeName    string            `json:"employee_name,omitempty"`
	Earnings        PayslipEarnings   `json:"earnings"`
	Deductions      PayslipDeductions `json:"deductions"`
	GrossPay        float64           `json:"gross_pay"`
	TotalDeductions float64           `json:"total_deductions"`
	NetPay          float64           `json:"net_pay"`
	TotalDays       int               `json:"total_days"`
	PayableDays     int               `json:"payable_days"`
	UnpaidLeaveDays int               `json:"unpaid_leave_days"`
	AbsentDays      int               `json:"absent_days"`
	Status          string            `json:"status"`
}
