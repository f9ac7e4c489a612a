package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeInactive = errors.New("employee is not active")
	ErrInvalidOTMethod  = errors.New("invalid overtime method")
	ErrInvalidDivideBy  = errors.New("divideBy must be 240 or 200")
)
