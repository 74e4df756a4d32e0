package account

import (
	"context"
	"time"

	"lending/core"
	"lending/internal/ledger"

	"github.com/shopspring/decimal"
)

type accountService struct {
	bankStore     core.IBankStore
	positionStore core.IPositionStore
	priceService  core.IPriceOracleService
	maxQuoteAge   time.Duration
}

// New new account service
func New(
	bankStore core.IBankStore,
	positionStore core.IPositionStore,
	priceService core.IPriceOracleService,
	maxQuoteAge time.Duration,
) core.IAccountService {
	return &accountService{
		bankStore:     bankStore,
		positionStore: positionStore,
		priceService:  priceService,
		maxQuoteAge:   maxQuoteAge,
	}
}

// values accrued values of every position the user holds, priced at fresh
// quotes. riskCollateral is weighted by each bank's liquidation threshold,
// borrowLimit by its max LTV; the two risk parameters stay distinct.
type values struct {
	collateral     decimal.Decimal
	riskCollateral decimal.Decimal
	borrowLimit    decimal.Decimal
	debt           decimal.Decimal
}

func (s *accountService) userValues(ctx context.Context, userID string, at time.Time) (*values, error) {
	positions, err := s.positionStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	banks, err := s.bankStore.AllAsMap(ctx)
	if err != nil {
		return nil, err
	}

	v := &values{
		collateral:     decimal.Zero,
		riskCollateral: decimal.Zero,
		borrowLimit:    decimal.Zero,
		debt:           decimal.Zero,
	}

	for _, position := range positions {
		bank, ok := banks[position.AssetID]
		if !ok {
			return nil, core.ErrBankNotFound
		}

		quote, err := s.priceService.GetQuote(ctx, position.AssetID, s.maxQuoteAge)
		if err != nil {
			return nil, err
		}

		deposited, err := ledger.Accrue(position.DepositedAmount, bank.InterestRate, elapsed(at, position.LastUpdatedDeposit))
		if err != nil {
			return nil, err
		}

		borrowed, err := ledger.Accrue(position.BorrowedAmount, bank.InterestRate, elapsed(at, position.LastUpdatedBorrow))
		if err != nil {
			return nil, err
		}

		depositedValue := deposited.Mul(quote.Price)
		v.collateral = v.collateral.Add(depositedValue)
		v.riskCollateral = v.riskCollateral.Add(depositedValue.Mul(bank.LiquidationThreshold))
		v.borrowLimit = v.borrowLimit.Add(depositedValue.Mul(bank.MaxLTV))
		v.debt = v.debt.Add(borrowed.Mul(quote.Price))
	}

	return v, nil
}

func (s *accountService) CollateralValue(ctx context.Context, userID string, at time.Time) (decimal.Decimal, error) {
	v, err := s.userValues(ctx, userID, at)
	if err != nil {
		return decimal.Zero, err
	}

	return v.collateral, nil
}

func (s *accountService) DebtValue(ctx context.Context, userID string, at time.Time) (decimal.Decimal, error) {
	v, err := s.userValues(ctx, userID, at)
	if err != nil {
		return decimal.Zero, err
	}

	return v.debt, nil
}

func (s *accountService) BorrowingPower(ctx context.Context, userID string, at time.Time) (decimal.Decimal, error) {
	v, err := s.userValues(ctx, userID, at)
	if err != nil {
		return decimal.Zero, err
	}

	return v.borrowLimit.Sub(v.debt), nil
}

func (s *accountService) HealthFactor(ctx context.Context, userID string, at time.Time) (decimal.Decimal, error) {
	v, err := s.userValues(ctx, userID, at)
	if err != nil {
		return decimal.Zero, err
	}

	return ledger.HealthFactor(v.riskCollateral, v.debt), nil
}

// elapsed seconds since a balance was brought current; a never-touched
// balance has nothing to accrue
func elapsed(at, last time.Time) int64 {
	if last.IsZero() {
		return 0
	}
	return at.Unix() - last.Unix()
}
