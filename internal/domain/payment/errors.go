package payment

import "errors"

var (
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentAlreadyExists = errors.New("payment already exists for this company and period")
	ErrNoSalaries           = errors.New("no salaries found for this company and period")

	// ErrReferenceNotFound is a downstream lookup failure; it is attached
	// to the payment as a warning, never a hard failure of the amounts.
	ErrReferenceNotFound = errors.New("EPF reference number not found")
)
