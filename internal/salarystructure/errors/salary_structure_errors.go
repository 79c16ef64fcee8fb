package structureerrors

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
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidValidityWindow = apperror.New(
		apperror.CodeInvalidInput,
		"effective_from must be before or equal effective_to",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrStructureNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary structure not found",
		http.StatusNotFound,
	)
	ErrStructureEffectiveConflict = apperror.New(
		apperror.CodeConflict,
		"salary structure for this employee and effective date already exists",
		http.StatusConflict,
	)

	// Calculator validation errors. The calculator returns the prior
	// component set unchanged alongside these.
	ErrPercentOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"percent must be between 0 and 100",
		http.StatusBadRequest,
	)
	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must not be negative",
		http.StatusBadRequest,
	)
	ErrAmountOrPercentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"exactly one of amount or percent must be provided",
		http.StatusBadRequest,
	)
	ErrFlatComponentPercent = apperror.New(
		apperror.CodeInvalidInput,
		"this component is a flat amount and cannot be edited by percent",
		http.StatusBadRequest,
	)
	ErrUnknownComponent = apperror.New(
		apperror.CodeInvalidInput,
		"unknown salary component",
		http.StatusBadRequest,
	)

	// ErrNoSalaryBasis is the configuration error raised when an employee
	// has neither a stored structure nor a flat monthly wage.
	ErrNoSalaryBasis = apperror.New(
		apperror.CodeConfigError,
		"employee has no salary structure and no flat monthly wage",
		http.StatusUnprocessableEntity,
	)
)
