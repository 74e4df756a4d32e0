package ledger

import (
	"context"
	"testing"
	"time"

	"lending/config"
	"lending/core"
	accountservice "lending/service/account"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeBankStore struct {
	banks   map[string]*core.Bank
	updates int
}

func (s *fakeBankStore) Create(ctx context.Context, tx *db.DB, bank *core.Bank) error {
	s.banks[bank.AssetID] = bank
	return nil
}

func (s *fakeBankStore) Find(ctx context.Context, assetID string) (*core.Bank, error) {
	bank, ok := s.banks[assetID]
	if !ok {
		return nil, core.ErrBankNotFound
	}
	return bank, nil
}

func (s *fakeBankStore) FindBySymbol(ctx context.Context, symbol string) (*core.Bank, error) {
	for _, bank := range s.banks {
		if bank.Symbol == symbol {
			return bank, nil
		}
	}
	return nil, core.ErrBankNotFound
}

func (s *fakeBankStore) All(ctx context.Context) ([]*core.Bank, error) {
	banks := make([]*core.Bank, 0, len(s.banks))
	for _, bank := range s.banks {
		banks = append(banks, bank)
	}
	return banks, nil
}

func (s *fakeBankStore) AllAsMap(ctx context.Context) (map[string]*core.Bank, error) {
	return s.banks, nil
}

func (s *fakeBankStore) Update(ctx context.Context, tx *db.DB, bank *core.Bank) error {
	s.updates++
	s.banks[bank.AssetID] = bank
	return nil
}

type fakePositionStore struct {
	positions []*core.Position
	updates   int
}

func (s *fakePositionStore) Create(ctx context.Context, tx *db.DB, position *core.Position) error {
	s.positions = append(s.positions, position)
	return nil
}

func (s *fakePositionStore) Find(ctx context.Context, userID, assetID string) (*core.Position, error) {
	for _, position := range s.positions {
		if position.UserID == userID && position.AssetID == assetID {
			return position, nil
		}
	}
	return &core.Position{UserID: userID, AssetID: assetID}, nil
}

func (s *fakePositionStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	var out []*core.Position
	for _, position := range s.positions {
		if position.UserID == userID {
			out = append(out, position)
		}
	}
	return out, nil
}

func (s *fakePositionStore) Update(ctx context.Context, tx *db.DB, position *core.Position) error {
	s.updates++
	for _, existing := range s.positions {
		if existing.UserID == position.UserID && existing.AssetID == position.AssetID {
			*existing = *position
			return nil
		}
	}
	s.positions = append(s.positions, position)
	return nil
}

func (s *fakePositionStore) Borrowers(ctx context.Context, assetID string) ([]string, error) {
	var out []string
	for _, position := range s.positions {
		if position.AssetID == assetID && position.BorrowedShares.IsPositive() {
			out = append(out, position.UserID)
		}
	}
	return out, nil
}

type fakePriceService struct {
	quotes map[string]decimal.Decimal
}

func (s *fakePriceService) GetQuote(ctx context.Context, assetID string, maxAge time.Duration) (*core.Quote, error) {
	price, ok := s.quotes[assetID]
	if !ok {
		return nil, core.ErrStalePrice
	}
	return &core.Quote{AssetID: assetID, Price: price, Time: time.Now()}, nil
}

func (s *fakePriceService) PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*core.PriceTicker, error) {
	return nil, core.ErrStalePrice
}

func (s *fakePriceService) PullAllPriceTickers(ctx context.Context, t time.Time) ([]*core.PriceTicker, error) {
	return nil, core.ErrStalePrice
}

type transferCall struct {
	From    string
	To      string
	AssetID string
	Amount  decimal.Decimal
}

type fakeTransferService struct {
	calls []transferCall
}

func (s *fakeTransferService) Transfer(ctx context.Context, tx *db.DB, from, to, assetID string, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return core.ErrInvalidAmount
	}
	s.calls = append(s.calls, transferCall{From: from, To: to, AssetID: assetID, Amount: amount})
	return nil
}

func (s *fakeTransferService) Balance(ctx context.Context, holderID, assetID string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

const (
	btcAssetID = "c6d0c728-2624-429b-8e0d-d9d19b6592fa"
	usdAssetID = "4d8c508b-91c5-375b-92b0-ee702ed2dac5"

	btcTreasuryID = "2c9685b4-5a19-3a56-94c4-4fbae80d32f1"
	usdTreasuryID = "9a8d8e17-05c3-3a7e-b5c9-221c37f0e4a2"
)

type fixture struct {
	banks     *fakeBankStore
	positions *fakePositionStore
	transfers *fakeTransferService
	svc       *ledgerService
}

func newFixture(banks []*core.Bank, positions []*core.Position, quotes map[string]decimal.Decimal) *fixture {
	bankStore := &fakeBankStore{banks: map[string]*core.Bank{}}
	for _, bank := range banks {
		bankStore.banks[bank.AssetID] = bank
	}

	positionStore := &fakePositionStore{positions: positions}
	priceService := &fakePriceService{quotes: quotes}
	transfers := &fakeTransferService{}
	accountSrv := accountservice.New(bankStore, positionStore, priceService, time.Minute)

	cfg := &config.Config{App: config.App{QuoteMaxAge: 60}}
	svc := New(nil, cfg, bankStore, positionStore, nil, transfers, accountSrv, priceService).(*ledgerService)

	return &fixture{
		banks:     bankStore,
		positions: positionStore,
		transfers: transfers,
		svc:       svc,
	}
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// 1 BTC deposited at 10000 with max ltv 0.8 gives 8000 of borrowing power
func newBorrowFixture(now time.Time) *fixture {
	return newFixture(
		[]*core.Bank{
			{
				AssetID:              btcAssetID,
				Symbol:               "BTC",
				TreasuryID:           btcTreasuryID,
				TotalDeposits:        d("1"),
				TotalDepositShares:   d("1"),
				LiquidationThreshold: d("0.85"),
				MaxLTV:               d("0.8"),
				LastAccruedAt:        now,
			},
			{
				AssetID:              usdAssetID,
				Symbol:               "USD",
				TreasuryID:           usdTreasuryID,
				TotalDeposits:        d("100000"),
				TotalDepositShares:   d("100000"),
				LiquidationThreshold: d("0.9"),
				MaxLTV:               d("0.85"),
				LastAccruedAt:        now,
			},
		},
		[]*core.Position{
			{
				ID:                 1,
				UserID:             "user-1",
				AssetID:            btcAssetID,
				DepositedAmount:    d("1"),
				DepositedShares:    d("1"),
				LastUpdatedDeposit: now,
			},
		},
		map[string]decimal.Decimal{
			btcAssetID: d("10000"),
			usdAssetID: d("1"),
		},
	)
}

func TestBorrowAtFullBorrowingPower(t *testing.T) {
	ctx := context.Background()
	f := newBorrowFixture(time.Now())

	require.Nil(t, f.svc.borrow(ctx, nil, "user-1", usdAssetID, d("8000")))

	position, err := f.positions.Find(ctx, "user-1", usdAssetID)
	require.Nil(t, err)
	require.True(t, position.BorrowedAmount.Equal(d("8000")), "borrowed = %s", position.BorrowedAmount)
	require.True(t, position.BorrowedShares.Equal(d("8000")))

	bank, err := f.banks.Find(ctx, usdAssetID)
	require.Nil(t, err)
	require.True(t, bank.TotalBorrows.Equal(d("8000")))
	require.True(t, bank.TotalBorrowShares.Equal(d("8000")))

	require.Len(t, f.transfers.calls, 1)
	require.Equal(t, usdTreasuryID, f.transfers.calls[0].From)
	require.Equal(t, "user-1", f.transfers.calls[0].To)
	require.True(t, f.transfers.calls[0].Amount.Equal(d("8000")))
}

func TestBorrowOverBorrowingPower(t *testing.T) {
	ctx := context.Background()
	f := newBorrowFixture(time.Now())

	err := f.svc.borrow(ctx, nil, "user-1", usdAssetID, d("8000.00000001"))
	require.Equal(t, core.ErrOverBorrowable, err)

	require.Empty(t, f.transfers.calls)
	position, err := f.positions.Find(ctx, "user-1", usdAssetID)
	require.Nil(t, err)
	require.True(t, position.BorrowedAmount.IsZero())
}

func newRepayFixture(now time.Time) *fixture {
	return newFixture(
		[]*core.Bank{
			{
				AssetID:              usdAssetID,
				Symbol:               "USD",
				TreasuryID:           usdTreasuryID,
				TotalDeposits:        d("100000"),
				TotalDepositShares:   d("100000"),
				TotalBorrows:         d("100"),
				TotalBorrowShares:    d("90"),
				LiquidationThreshold: d("0.9"),
				MaxLTV:               d("0.85"),
				LastAccruedAt:        now,
			},
		},
		[]*core.Position{
			{
				ID:                1,
				UserID:            "user-1",
				AssetID:           usdAssetID,
				BorrowedAmount:    d("100"),
				BorrowedShares:    d("90"),
				LastUpdatedBorrow: now,
			},
		},
		map[string]decimal.Decimal{usdAssetID: d("1")},
	)
}

func TestRepayFullClearsShares(t *testing.T) {
	ctx := context.Background()
	f := newRepayFixture(time.Now())

	require.Nil(t, f.svc.repay(ctx, nil, "user-1", usdAssetID, d("100")))

	// the whole debt gone means exactly zero shares, no rounding dust
	position, err := f.positions.Find(ctx, "user-1", usdAssetID)
	require.Nil(t, err)
	require.True(t, position.BorrowedShares.IsZero(), "shares = %s", position.BorrowedShares)
	require.True(t, position.BorrowedAmount.IsZero())

	bank, err := f.banks.Find(ctx, usdAssetID)
	require.Nil(t, err)
	require.True(t, bank.TotalBorrows.IsZero())
	require.True(t, bank.TotalBorrowShares.IsZero())

	require.Len(t, f.transfers.calls, 1)
	require.Equal(t, "user-1", f.transfers.calls[0].From)
	require.Equal(t, usdTreasuryID, f.transfers.calls[0].To)
}

func TestRepayOverOwed(t *testing.T) {
	ctx := context.Background()
	f := newRepayFixture(time.Now())

	err := f.svc.repay(ctx, nil, "user-1", usdAssetID, d("100.00000001"))
	require.Equal(t, core.ErrOverRepay, err)
	require.Empty(t, f.transfers.calls)
}

func TestLiquidateHealthyPosition(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	// 1 BTC against 5000 USD of debt: health factor 8500/5000 = 1.7
	f := newFixture(
		[]*core.Bank{
			{
				AssetID:              btcAssetID,
				Symbol:               "BTC",
				TreasuryID:           btcTreasuryID,
				TotalDeposits:        d("1"),
				TotalDepositShares:   d("1"),
				LiquidationThreshold: d("0.85"),
				MaxLTV:               d("0.8"),
				LiquidationBonus:     d("0.05"),
				CloseFactor:          d("0.5"),
				LastAccruedAt:        now,
			},
			{
				AssetID:              usdAssetID,
				Symbol:               "USD",
				TreasuryID:           usdTreasuryID,
				TotalDeposits:        d("100000"),
				TotalDepositShares:   d("100000"),
				TotalBorrows:         d("5000"),
				TotalBorrowShares:    d("5000"),
				LiquidationThreshold: d("0.9"),
				MaxLTV:               d("0.85"),
				LiquidationBonus:     d("0.05"),
				CloseFactor:          d("0.5"),
				LastAccruedAt:        now,
			},
		},
		[]*core.Position{
			{
				ID:                 1,
				UserID:             "user-1",
				AssetID:            btcAssetID,
				DepositedAmount:    d("1"),
				DepositedShares:    d("1"),
				LastUpdatedDeposit: now,
			},
			{
				ID:                2,
				UserID:            "user-1",
				AssetID:           usdAssetID,
				BorrowedAmount:    d("5000"),
				BorrowedShares:    d("5000"),
				LastUpdatedBorrow: now,
			},
		},
		map[string]decimal.Decimal{
			btcAssetID: d("10000"),
			usdAssetID: d("1"),
		},
	)

	payout, err := f.svc.liquidate(ctx, nil, "user-2", "user-1", btcAssetID, usdAssetID)
	require.Equal(t, core.ErrNotUnderCollateralized, err)
	require.Nil(t, payout)

	// nothing moved, nothing persisted
	require.Empty(t, f.transfers.calls)
	require.Zero(t, f.banks.updates)
	require.Zero(t, f.positions.updates)
}
