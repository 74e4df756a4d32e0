package views

import (
	"lending/core"

	"github.com/shopspring/decimal"
)

// Position position view
type Position struct {
	core.Position
	Symbol string `json:"symbol"`
}

// Account account view: a user's positions with the risk engine's figures
type Account struct {
	UserID          string          `json:"user_id"`
	CollateralValue decimal.Decimal `json:"collateral_value"`
	DebtValue       decimal.Decimal `json:"debt_value"`
	BorrowingPower  decimal.Decimal `json:"borrowing_power"`
	HealthFactor    decimal.Decimal `json:"health_factor"`
	Liquidatable    bool            `json:"liquidatable"`
	Positions       []*Position     `json:"positions"`
}
