package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100002
	// ErrInvalidArgument invalid argument
	ErrInvalidArgument ErrorCode = 100003

	// ErrBankNotFound no bank for asset
	ErrBankNotFound ErrorCode = 100100
	// ErrPositionNotFound no position
	ErrPositionNotFound ErrorCode = 100101
	// ErrUserNotFound no user
	ErrUserNotFound ErrorCode = 100102
	// ErrBankExists bank already initialized for asset
	ErrBankExists ErrorCode = 100103

	// ErrInsufficientFunds holder lacks balance for a transfer
	ErrInsufficientFunds ErrorCode = 100200
	// ErrOverBorrowable requested borrow exceeds borrowing power
	ErrOverBorrowable ErrorCode = 100201
	// ErrOverRepay repay amount exceeds owed balance, or seizure exceeds collateral
	ErrOverRepay ErrorCode = 100202
	// ErrStalePrice price quote older than max age or missing
	ErrStalePrice ErrorCode = 100203
	// ErrNotUnderCollateralized liquidation attempted on a healthy position
	ErrNotUnderCollateralized ErrorCode = 100204
	// ErrUnderflow share/amount math would drop below zero
	ErrUnderflow ErrorCode = 100205
	// ErrDivisionByZero share conversion against an empty pool
	ErrDivisionByZero ErrorCode = 100206
	// ErrClockSkew negative elapsed time on accrual
	ErrClockSkew ErrorCode = 100207
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
