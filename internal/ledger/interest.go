package ledger

import (
	"lending/core"

	"github.com/shopspring/decimal"
)

var (
	// MaxPrecision max precision for rates and intermediate ratios
	MaxPrecision int32 = 16
	// AmountPrecision precision of stored amounts and shares
	AmountPrecision int32 = 8

	one        = decimal.New(1, 0)
	expEpsilon = decimal.New(1, -17)
)

// expMaxTerms bounds the Taylor expansion; 64 terms converge well past
// expEpsilon for any exponent a sane per-second rate can produce
const expMaxTerms = 64

// Exp e^x by Taylor expansion in decimal, terms accumulated at
// MaxPrecision+8 digits until they fall below expEpsilon, result truncated to
// MaxPrecision. Deterministic: no float64 anywhere.
func Exp(x decimal.Decimal) decimal.Decimal {
	sum := one
	term := one
	n := decimal.Zero
	for i := 0; i < expMaxTerms; i++ {
		n = n.Add(one)
		term = term.Mul(x).DivRound(n, MaxPrecision+8)
		sum = sum.Add(term)
		if term.Abs().LessThan(expEpsilon) {
			break
		}
	}
	return sum.Truncate(MaxPrecision)
}

// Accrue continuous compounding: principal * e^(rate*elapsed), truncated to
// AmountPrecision. elapsed is seconds since the balance was last brought
// current and must be non-negative.
func Accrue(principal, rate decimal.Decimal, elapsed int64) (decimal.Decimal, error) {
	if elapsed < 0 {
		return decimal.Zero, core.ErrClockSkew
	}
	if elapsed == 0 || principal.Sign() == 0 || rate.Sign() == 0 {
		return principal, nil
	}

	x := rate.Mul(decimal.NewFromInt(elapsed))
	return principal.Mul(Exp(x)).Truncate(AmountPrecision), nil
}
