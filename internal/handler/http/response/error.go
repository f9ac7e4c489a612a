package response

import (
	"errors"
	"net/http"

	"github.com/anush47/salaryapp-backend-go/internal/domain/attendance"
	"github.com/anush47/salaryapp-backend-go/internal/domain/company"
	"github.com/anush47/salaryapp-backend-go/internal/domain/employee"
	"github.com/anush47/salaryapp-backend-go/internal/domain/payment"
	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
	"github.com/anush47/salaryapp-backend-go/internal/domain/purchase"
	"github.com/anush47/salaryapp-backend-go/internal/domain/salary"
	"github.com/anush47/salaryapp-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// CSV parse failures carry the failing line number in the message.
	var parseErr *attendance.ParseError
	if errors.As(err, &parseErr) {
		BadRequest(w, parseErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, purchase.ErrPeriodNotPurchased):
		NotPurchased(w, "Salary generation is not purchased for this period")

	case errors.Is(err, period.ErrInvalidPeriod):
		BadRequest(w, "Period must be in YYYY-MM format", nil)

	// Attendance errors
	case errors.Is(err, attendance.ErrEmptyCSV):
		BadRequest(w, "Attendance CSV is empty", nil)
	case errors.Is(err, attendance.ErrAttendanceDataMissing):
		BadRequest(w, "Attendance data required for employees on the calc OT method", nil)

	// Company and employee errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanyInactive):
		BadRequest(w, "Company is inactive", nil)
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", nil)

	// Salary errors
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Salary not found")
	case errors.Is(err, salary.ErrSalaryAlreadyExists):
		Conflict(w, "Salary already exists for this employee and period")
	case errors.Is(err, salary.ErrNoEmployees):
		BadRequest(w, "No employees to generate salaries for", nil)

	// Payment errors
	case errors.Is(err, payment.ErrPaymentNotFound):
		NotFound(w, "Payment not found")
	case errors.Is(err, payment.ErrPaymentAlreadyExists):
		Conflict(w, "Payment already exists for this period; use regenerate to recompute")
	case errors.Is(err, payment.ErrNoSalaries):
		BadRequest(w, "No salaries exist for this period", nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
