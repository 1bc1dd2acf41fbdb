package ledger

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Code identifies a class of ledger failure.
type Code string

const (
	CodeBadRole               Code = "BAD_ROLE"
	CodeCollateralDisabled    Code = "COLLATERAL_DISABLED"
	CodeStakeCapExceeded      Code = "STAKE_CAP_EXCEEDED"
	CodeInvalidRange          Code = "INVALID_RANGE"
	CodeAlreadyExecuted       Code = "ALREADY_EXECUTED"
	CodeDelegatorActionPaused Code = "DELEGATOR_ACTION_PAUSED"
	CodeRequestPaused         Code = "REQUEST_PAUSED"
	CodeTimelock              Code = "TIMELOCK"
	CodeAlreadyExists         Code = "ALREADY_EXISTS"
	CodeZeroAmount            Code = "ZERO_AMOUNT"
	CodeInsufficientAmount    Code = "INSUFFICIENT_AMOUNT"
	CodeNotFound              Code = "NOT_FOUND"
	CodePaused                Code = "PAUSED"
	CodeInvalidArgument       Code = "INVALID_ARGUMENT"
	CodeArithmetic            Code = "ARITHMETIC"
	CodeReentrantCall         Code = "REENTRANT_CALL"
	CodeCollaborator          Code = "COLLABORATOR"
)

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	ErrBadRole               = &Error{Code: CodeBadRole}
	ErrCollateralDisabled    = &Error{Code: CodeCollateralDisabled}
	ErrStakeCapExceeded      = &Error{Code: CodeStakeCapExceeded}
	ErrInvalidRange          = &Error{Code: CodeInvalidRange}
	ErrAlreadyExecuted       = &Error{Code: CodeAlreadyExecuted}
	ErrDelegatorActionPaused = &Error{Code: CodeDelegatorActionPaused}
	ErrRequestPaused         = &Error{Code: CodeRequestPaused}
	ErrTimelock              = &Error{Code: CodeTimelock}
	ErrAlreadyExists         = &Error{Code: CodeAlreadyExists}
	ErrZeroAmount            = &Error{Code: CodeZeroAmount}
	ErrInsufficientAmount    = &Error{Code: CodeInsufficientAmount}
	ErrNotFound              = &Error{Code: CodeNotFound}
	ErrPaused                = &Error{Code: CodePaused}
	ErrInvalidArgument       = &Error{Code: CodeInvalidArgument}
	ErrArithmetic            = &Error{Code: CodeArithmetic}
	ErrReentrantCall         = &Error{Code: CodeReentrantCall}
	ErrCollaborator          = &Error{Code: CodeCollaborator}
)

// Error is a typed ledger failure. Validator, Collateral and RequestID carry
// the context a caller needs to adjust and resubmit.
type Error struct {
	Code       Code
	Msg        string
	Validator  *common.Address
	Collateral *common.Address
	RequestID  *uint64
	Err        error
}

func newError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func wrapCollaborator(err error, format string, args ...interface{}) *Error {
	return &Error{Code: CodeCollaborator, Err: errors.Wrapf(err, format, args...)}
}

func (e *Error) withValidator(v common.Address) *Error {
	e.Validator = &v
	return e
}

func (e *Error) withCollateral(c common.Address) *Error {
	e.Collateral = &c
	return e
}

func (e *Error) withRequest(id uint64) *Error {
	e.RequestID = &id
	return e
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(string(e.Code)))
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Validator != nil {
		b.WriteString(" validator=")
		b.WriteString(e.Validator.Hex())
	}
	if e.Collateral != nil {
		b.WriteString(" collateral=")
		b.WriteString(e.Collateral.Hex())
	}
	if e.RequestID != nil {
		fmt.Fprintf(&b, " request=%d", *e.RequestID)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the code of a ledger error, or "" for any other error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
