package cmd

import (
	"time"

	"lending/config"
	"lending/core"
	accountservice "lending/service/account"
	ledgerservice "lending/service/ledger"
	"lending/service/oracle"
	walletservice "lending/service/wallet"
	"lending/store/bank"
	"lending/store/position"
	"lending/store/price"
	"lending/store/user"
	"lending/store/wallet"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *config.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func provideBankStore(db *db.DB) core.IBankStore {
	return bank.New(db)
}

func providePositionStore(db *db.DB) core.IPositionStore {
	return position.New(db)
}

func provideUserStore(db *db.DB) core.IUserStore {
	return user.Cache(user.New(db))
}

func providePriceStore(db *db.DB) core.IPriceStore {
	return price.New(db)
}

func provideWalletStore(db *db.DB) core.IWalletStore {
	return wallet.New(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

// ------------------service------------------------------------

func providePriceService(priceStore core.IPriceStore) core.IPriceOracleService {
	return oracle.New(provideConfig(), priceStore)
}

func provideTransferService(walletStore core.IWalletStore) core.ITransferService {
	return walletservice.New(walletStore)
}

func provideAccountService(
	bankStore core.IBankStore,
	positionStore core.IPositionStore,
	priceSrv core.IPriceOracleService,
) core.IAccountService {
	return accountservice.New(bankStore, positionStore, priceSrv,
		time.Duration(cfg.App.QuoteMaxAge)*time.Second)
}

func provideLedgerService(
	db *db.DB,
	bankStore core.IBankStore,
	positionStore core.IPositionStore,
	userStore core.IUserStore,
	transferSrv core.ITransferService,
	accountSrv core.IAccountService,
	priceSrv core.IPriceOracleService,
) core.ILedgerService {
	return ledgerservice.New(db, provideConfig(),
		bankStore,
		positionStore,
		userStore,
		transferSrv,
		accountSrv,
		priceSrv)
}
