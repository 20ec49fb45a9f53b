package errors

import (
	"github.com/reflectoken/rtk/jsonx"
)

// ProgramErrorCode represents standardized error codes for program invocations
type ProgramErrorCode string

const (
	// General errors
	ErrCodeInternal ProgramErrorCode = "internal_error"

	// Decode errors
	ErrCodeMalformedInput     = "malformed_input"
	ErrCodeUnknownInstruction = "unknown_instruction"

	// Precondition errors
	ErrCodeInvalidArgument = "invalid_argument"
	ErrCodeUnauthorized    = "unauthorized"

	// Ledger errors
	ErrCodeInsufficientFunds   = "insufficient_funds"
	ErrCodeIndexOutOfRange     = "index_out_of_range"
	ErrCodeInsufficientBalance = "insufficient_balance"

	// Host errors
	ErrCodeAccountNotFound = "account_not_found"
)

// ProgramError is a typed failure surfaced to the host. The host aborts the
// invocation's effects on any ProgramError; nothing is persisted.
type ProgramError struct {
	Code    ProgramErrorCode `json:"code"`
	Message string           `json:"message"`
}

// Error implements the error interface
func (e *ProgramError) Error() string {
	err, _ := jsonx.Marshal(ProgramError{
		Code:    e.Code,
		Message: e.Message,
	})
	return string(err)
}

// NewError creates a new ProgramError and returns it as error interface
func NewError(code ProgramErrorCode, message string) error {
	return &ProgramError{
		Code:    code,
		Message: message,
	}
}

// CodeOf extracts the error code from err, or ErrCodeInternal for untyped errors.
func CodeOf(err error) ProgramErrorCode {
	if pe, ok := err.(*ProgramError); ok {
		return pe.Code
	}
	return ErrCodeInternal
}
