package payrunerrors

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
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period_start must be before or equal period_end",
		http.StatusBadRequest,
	)
	ErrPayrunOverlap = apperror.New(
		apperror.CodeConflict,
		"a payrun already covers an overlapping period",
		http.StatusConflict,
	)
	ErrPayrunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payrun not found",
		http.StatusNotFound,
	)
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid payrun status transition",
		http.StatusConflict,
	)
	ErrPayslipValidated = apperror.New(
		apperror.CodeInvalidState,
		"a validated payslip is read only",
		http.StatusConflict,
	)
	ErrPayrunNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"only a draft payrun can be deleted",
		http.StatusConflict,
	)
)
