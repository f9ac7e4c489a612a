package salary

import "errors"

var (
	ErrSalaryNotFound      = errors.New("salary not found")
	ErrSalaryAlreadyExists = errors.New("salary already exists for this employee and period")
	ErrNoEmployees         = errors.New("no active employees to generate salaries for")
)
