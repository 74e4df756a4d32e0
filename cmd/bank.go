package cmd

import (
	"strings"

	"lending/core"
	"lending/pkg/number"

	"github.com/spf13/cobra"
)

var addBankCmd = &cobra.Command{
	Use:     "add-bank",
	Aliases: []string{"ab"},
	Short:   "register a lendable asset",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		symbol, e := cmd.Flags().GetString("symbol")
		if e != nil || symbol == "" {
			panic("invalid symbol")
		}
		assetID, e := cmd.Flags().GetString("asset")
		if e != nil || assetID == "" {
			panic("invalid assetID")
		}
		threshold, e := cmd.Flags().GetString("threshold")
		if e != nil || threshold == "" {
			panic("invalid liquidation threshold")
		}
		maxLTV, e := cmd.Flags().GetString("ltv")
		if e != nil || maxLTV == "" {
			panic("invalid max ltv")
		}
		bonus, e := cmd.Flags().GetString("bonus")
		if e != nil || bonus == "" {
			panic("invalid liquidation bonus")
		}
		closeFactor, e := cmd.Flags().GetString("close-factor")
		if e != nil || closeFactor == "" {
			panic("invalid close factor")
		}
		rate, e := cmd.Flags().GetString("rate")
		if e != nil || rate == "" {
			panic("invalid interest rate")
		}

		database := provideDatabase()
		defer database.Close()

		bankStore := provideBankStore(database)
		positionStore := providePositionStore(database)
		userStore := provideUserStore(database)
		priceStore := providePriceStore(database)
		walletStore := provideWalletStore(database)

		priceService := providePriceService(priceStore)
		transferService := provideTransferService(walletStore)
		accountService := provideAccountService(bankStore, positionStore, priceService)
		ledgerService := provideLedgerService(database, bankStore, positionStore, userStore, transferService, accountService, priceService)

		bank, err := ledgerService.InitBank(ctx, core.BankParams{
			AssetID:              assetID,
			Symbol:               strings.ToUpper(symbol),
			LiquidationThreshold: number.Decimal(threshold),
			MaxLTV:               number.Decimal(maxLTV),
			LiquidationBonus:     number.Decimal(bonus),
			CloseFactor:          number.Decimal(closeFactor),
			InterestRate:         number.Decimal(rate),
		})
		if err != nil {
			panic(err)
		}

		cmd.Println("bank created:", bank.Symbol, bank.AssetID, "treasury:", bank.TreasuryID)
	},
}

func init() {
	rootCmd.AddCommand(addBankCmd)

	addBankCmd.Flags().StringP("symbol", "s", "", "asset symbol")
	addBankCmd.Flags().StringP("asset", "a", "", "asset id")
	addBankCmd.Flags().String("threshold", "0.85", "liquidation threshold")
	addBankCmd.Flags().String("ltv", "0.8", "max loan to value")
	addBankCmd.Flags().String("bonus", "0.05", "liquidation bonus")
	addBankCmd.Flags().String("close-factor", "0.5", "close factor")
	addBankCmd.Flags().String("rate", "0.0001", "interest rate per second")
}
