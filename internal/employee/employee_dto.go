package employee

type CreateEmployeeRequest struct {
	FullName      string  `json:"full_name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Phone         string  `json:"phone"`
	Department    string  `json:"department"`
	Position      string  `json:"position"`
	HireDate      string  `json:"hire_date" binding:"required"`
	MonthlySalary float64 `json:"monthly_salary"`
	EmployeeCode  string  `json:"employee_code"`
}

type UpdateEmployeeRequest struct {
	FullName      string   `json:"full_name" binding:"required"`
	Email         string   `json:"email" binding:"required,email"`
	Phone         string   `json:"phone"`
	Department    string   `json:"department"`
	Position      string   `json:"position"`
	HireDate      string   `json:"hire_date" binding:"required"`
	MonthlySalary *float64 `json:"monthly_salary"`
	Status        string   `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

type EmployeeResponse struct {
	ID            string  `json:"id"`
	EmployeeCode  string  `json:"employee_code"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone,omitempty"`
	Department    string  `json:"department,omitempty"`
	Position      string  `json:"position,omitempty"`
	HireDate      string  `json:"hire_date"`
	Status        string  `json:"status"`
	MonthlySalary float64 `json:"monthly_salary"`
	CompanyID     string  `json:"company_id"`
}
