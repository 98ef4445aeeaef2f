package player

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid_request")
	ErrNotFound            = errors.New("not_found")
	ErrCaseNotFound        = errors.New("case_not_found")
	ErrCaseEmpty           = errors.New("case_empty")
	ErrInvalidState        = errors.New("invalid_state")
	ErrInsufficientBalance = errors.New("insufficient_balance")
)
