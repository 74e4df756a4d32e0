package ledger

import (
	"context"
	"time"

	"lending/config"
	"lending/core"
	"lending/internal/ledger"
	"lending/pkg/id"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

var one = decimal.New(1, 0)

type ledgerService struct {
	db            *db.DB
	bankStore     core.IBankStore
	positionStore core.IPositionStore
	userStore     core.IUserStore
	transferz     core.ITransferService
	accountz      core.IAccountService
	priceService  core.IPriceOracleService
	maxQuoteAge   time.Duration
}

// New new ledger service
func New(
	db *db.DB,
	cfg *config.Config,
	bankStore core.IBankStore,
	positionStore core.IPositionStore,
	userStore core.IUserStore,
	transferSrv core.ITransferService,
	accountSrv core.IAccountService,
	priceSrv core.IPriceOracleService,
) core.ILedgerService {
	return &ledgerService{
		db:            db,
		bankStore:     bankStore,
		positionStore: positionStore,
		userStore:     userStore,
		transferz:     transferSrv,
		accountz:      accountSrv,
		priceService:  priceSrv,
		maxQuoteAge:   time.Duration(cfg.App.QuoteMaxAge) * time.Second,
	}
}

func (s *ledgerService) InitBank(ctx context.Context, params core.BankParams) (*core.Bank, error) {
	if _, err := govalidator.ValidateStruct(params); err != nil {
		return nil, core.ErrInvalidArgument
	}

	if err := validateBankParams(params); err != nil {
		return nil, err
	}

	if _, err := s.bankStore.Find(ctx, params.AssetID); err == nil {
		return nil, core.ErrBankExists
	} else if err != core.ErrBankNotFound {
		return nil, err
	}

	bank := &core.Bank{
		AssetID:              params.AssetID,
		Symbol:               params.Symbol,
		TreasuryID:           id.UUIDFromString("treasury-" + params.AssetID),
		TotalDeposits:        decimal.Zero,
		TotalDepositShares:   decimal.Zero,
		TotalBorrows:         decimal.Zero,
		TotalBorrowShares:    decimal.Zero,
		LiquidationThreshold: params.LiquidationThreshold,
		MaxLTV:               params.MaxLTV,
		LiquidationBonus:     params.LiquidationBonus,
		CloseFactor:          params.CloseFactor,
		InterestRate:         params.InterestRate,
		LastAccruedAt:        time.Now(),
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		return s.bankStore.Create(ctx, tx, bank)
	}); err != nil {
		return nil, err
	}

	return bank, nil
}

func validateBankParams(params core.BankParams) error {
	unit := func(d decimal.Decimal) bool {
		return d.Sign() > 0 && d.LessThanOrEqual(one)
	}

	if !unit(params.LiquidationThreshold) ||
		!unit(params.MaxLTV) ||
		!unit(params.CloseFactor) {
		return core.ErrInvalidArgument
	}

	if params.LiquidationBonus.Sign() < 0 || params.LiquidationBonus.GreaterThanOrEqual(one) {
		return core.ErrInvalidArgument
	}

	if params.InterestRate.Sign() < 0 {
		return core.ErrInvalidArgument
	}

	return nil
}

func (s *ledgerService) InitUser(ctx context.Context, address string) (*core.User, error) {
	if address == "" {
		return nil, core.ErrInvalidArgument
	}

	if user, err := s.userStore.FindByAddress(ctx, address); err == nil {
		return user, nil
	} else if err != core.ErrUserNotFound {
		return nil, err
	}

	user := &core.User{
		UserID:  id.GenTraceID(),
		Address: address,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// AccrueAll brings every bank's aggregate totals current, one transaction
// per bank
func (s *ledgerService) AccrueAll(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("service", "ledger")

	banks, err := s.bankStore.All(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, bank := range banks {
		bank := bank
		if err := s.db.Tx(func(tx *db.DB) error {
			if err := accrueBank(bank, now); err != nil {
				return err
			}
			return s.bankStore.Update(ctx, tx, bank)
		}); err != nil {
			log.WithError(err).Errorln("accrue bank", bank.Symbol)
			return err
		}
	}

	return nil
}

// accrueBank compounds both sides of the pool for the time elapsed since the
// last global update and stamps the bank current
func accrueBank(bank *core.Bank, now time.Time) error {
	dur := now.Unix() - bank.LastAccruedAt.Unix()

	deposits, err := ledger.Accrue(bank.TotalDeposits, bank.InterestRate, dur)
	if err != nil {
		return err
	}

	borrows, err := ledger.Accrue(bank.TotalBorrows, bank.InterestRate, dur)
	if err != nil {
		return err
	}

	bank.TotalDeposits = deposits
	bank.TotalBorrows = borrows
	bank.LastAccruedAt = now
	return nil
}

// accruePosition brings both sides of a position current. The timestamps move
// together with the amounts they guard.
func accruePosition(position *core.Position, bank *core.Bank, now time.Time) error {
	deposited, err := ledger.Accrue(position.DepositedAmount, bank.InterestRate, elapsed(now, position.LastUpdatedDeposit))
	if err != nil {
		return err
	}

	borrowed, err := ledger.Accrue(position.BorrowedAmount, bank.InterestRate, elapsed(now, position.LastUpdatedBorrow))
	if err != nil {
		return err
	}

	position.DepositedAmount = deposited
	position.LastUpdatedDeposit = now
	position.BorrowedAmount = borrowed
	position.LastUpdatedBorrow = now
	return nil
}

func elapsed(now, last time.Time) int64 {
	if last.IsZero() {
		return 0
	}
	return now.Unix() - last.Unix()
}
