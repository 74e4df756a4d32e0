package cmd

import (
	"sync"

	"lending/worker"
	"lending/worker/interest"
	"lending/worker/priceoracle"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "lending job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		propertyStore := providePropertyStore(database)
		bankStore := provideBankStore(database)
		positionStore := providePositionStore(database)
		userStore := provideUserStore(database)
		priceStore := providePriceStore(database)
		walletStore := provideWalletStore(database)

		priceService := providePriceService(priceStore)
		transferService := provideTransferService(walletStore)
		accountService := provideAccountService(bankStore, positionStore, priceService)
		ledgerService := provideLedgerService(database, bankStore, positionStore, userStore, transferService, accountService, priceService)

		workers := []worker.Worker{
			interest.New(provideConfig(), ledgerService, propertyStore),
			priceoracle.New(provideConfig(), database, bankStore, priceStore, priceService),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
