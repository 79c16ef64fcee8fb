package settingserrors

import (
	"net/http"

	"workzen/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidTaxRate = apperror.New(
		apperror.CodeInvalidInput,
		"tax_rate must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrInvalidInsuranceRate = apperror.New(
		apperror.CodeInvalidInput,
		"insurance_rate must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrInvalidPayPeriodDays = apperror.New(
		apperror.CodeInvalidInput,
		"pay_period_days must be between 1 and 31",
		http.StatusBadRequest,
	)
)
