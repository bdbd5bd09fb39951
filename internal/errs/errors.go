// Package errs defines the stable, numeric error taxonomy clients parse
// against (see spec §7). Every core failure path returns a *Error so the
// numeric code survives any amount of %w-wrapping up the call stack.
package errs

import "fmt"

// Code is a stable, client-parsable error number. Ranges follow §7:
//
//	1001-1019  pool-local logic
//	1023-1030  pause / access state
//	1031-1046  fee, treasury, fee-update validation
//	1037-1041  consolidation-specific
//	1047-1049  calculation mismatches
//	3001+      strict-ratio / exactness
//	4001+      missing accounts
type Code int

const (
	InvalidTokenPair     Code = 1001
	InvalidRatio         Code = 1002
	InsufficientFunds    Code = 1003
	InvalidTokenAccount  Code = 1004
	InvalidSwapAmount    Code = 1005
	RentExemptFailure    Code = 1006
	PoolPaused           Code = 1007
	Unauthorized         Code = 1008
	ArithmeticOverflow   Code = 1009
	InvalidAccountData   Code = 1010
	NotEnoughAccountKeys Code = 1011
	AlreadyInitialized   Code = 1012

	SystemPaused        Code = 1023
	SystemNotPaused     Code = 1024
	PoolLiquidityPaused Code = 1025
	PoolSwapsPaused     Code = 1026
	SwapAccessRestricted Code = 1027
	FeeValidationFailed Code = 1028
	PoolIDMismatch      Code = 1029

	FeeOutOfRange         Code = 1031
	InvalidFeeUpdateFlags Code = 1032
	InvalidDonationAmount Code = 1033
	WithdrawalBelowMinimum Code = 1034
	WithdrawalExceedsLimit Code = 1035
	WithdrawalCooldownActive Code = 1036
	InvalidArgument       Code = 1037
	ConsolidationOverflow Code = 1038

	AmountMismatch      Code = 1047
	UnsafeRatioValue    Code = 1048
	UnsupportedRatioType Code = 1049

	StrictRatioViolation Code = 3001
	MissingUserLPAccount Code = 4001
)

var names = map[Code]string{
	InvalidTokenPair:         "InvalidTokenPair",
	InvalidRatio:             "InvalidRatio",
	InsufficientFunds:        "InsufficientFunds",
	InvalidTokenAccount:      "InvalidTokenAccount",
	InvalidSwapAmount:        "InvalidSwapAmount",
	RentExemptFailure:        "RentExemptFailure",
	PoolPaused:               "PoolPaused",
	Unauthorized:             "Unauthorized",
	ArithmeticOverflow:       "ArithmeticOverflow",
	InvalidAccountData:       "InvalidAccountData",
	NotEnoughAccountKeys:     "NotEnoughAccountKeys",
	AlreadyInitialized:       "AlreadyInitialized",
	SystemPaused:             "SystemPaused",
	SystemNotPaused:          "SystemNotPaused",
	PoolLiquidityPaused:      "PoolLiquidityPaused",
	PoolSwapsPaused:          "PoolSwapsPaused",
	SwapAccessRestricted:     "SwapAccessRestricted",
	FeeValidationFailed:      "FeeValidationFailed",
	PoolIDMismatch:           "PoolIDMismatch",
	FeeOutOfRange:            "FeeOutOfRange",
	InvalidFeeUpdateFlags:    "InvalidFeeUpdateFlags",
	InvalidDonationAmount:    "InvalidDonationAmount",
	WithdrawalBelowMinimum:   "WithdrawalBelowMinimum",
	WithdrawalExceedsLimit:   "WithdrawalExceedsLimit",
	WithdrawalCooldownActive: "WithdrawalCooldownActive",
	InvalidArgument:          "InvalidArgument",
	ConsolidationOverflow:    "ConsolidationOverflow",
	AmountMismatch:           "AmountMismatch",
	UnsafeRatioValue:         "UnsafeRatioValue",
	UnsupportedRatioType:     "UnsupportedRatioType",
	StrictRatioViolation:     "StrictRatioViolation",
	MissingUserLPAccount:     "MissingUserLPAccount",
}

func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Error wraps a stable Code with a human-readable message and, optionally,
// the lower-level error that triggered it.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Code, int(e.Code), e.Msg, e.Err)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, int(e.Code), e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a *Error with no lower-level cause.
func New(code Code, msg string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(msg, args...)}
}

// Wrap builds a *Error that chains an underlying error via %w semantics.
func Wrap(code Code, err error, msg string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(msg, args...), Err: err}
}

// CodeOf walks err's Unwrap chain and returns the Code of the first *Error
// it finds. Code is not itself an error, so errors.Is cannot match on it;
// CodeOf is the way to test for one.
func CodeOf(err error) (Code, bool) {
	var fe *Error
	for err != nil {
		if e, ok := err.(*Error); ok {
			fe = e
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if fe == nil {
		return 0, false
	}
	return fe.Code, true
}
