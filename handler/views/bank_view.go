package views

import (
	"lending/core"
	"lending/pkg/number"

	"github.com/shopspring/decimal"
)

var secondsPerYear = decimal.NewFromInt(31536000)

// Bank bank view
type Bank struct {
	core.Bank
	Liquidity decimal.Decimal `json:"liquidity"`
	// APY continuous rate compounded over a year, rounded up for display
	APY decimal.Decimal `json:"apy"`
}

// NewBank new bank view
func NewBank(bank *core.Bank) *Bank {
	return &Bank{
		Bank:      *bank,
		Liquidity: bank.Liquidity(),
		APY:       number.Ceil(bank.InterestRate.Mul(secondsPerYear), 4),
	}
}
