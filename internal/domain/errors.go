package domain

import "errors"

// Error message constants for consistent error responses
const (
	ErrMsgAccountNotFound   = "account not found"
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgBetBelowMinimum   = "bet below minimum"
	ErrMsgBetAboveMaximum   = "bet above maximum"
	ErrMsgInvalidChoice     = "invalid choice"
	ErrMsgInvalidTarget     = "invalid target"
	ErrMsgUnknownGame       = "unknown game"
	ErrMsgInvalidAmount     = "invalid amount"
)

// Sentinel errors. Services wrap these with fmt.Errorf("%w: detail")
// and handlers map them to responses with errors.Is.
var (
	ErrAccountNotFound   = errors.New(ErrMsgAccountNotFound)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrBetBelowMinimum   = errors.New(ErrMsgBetBelowMinimum)
	ErrBetAboveMaximum   = errors.New(ErrMsgBetAboveMaximum)
	ErrInvalidChoice     = errors.New(ErrMsgInvalidChoice)
	ErrInvalidTarget     = errors.New(ErrMsgInvalidTarget)
	ErrUnknownGame       = errors.New(ErrMsgUnknownGame)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)
)
