package cmd

import (
	"github.com/spf13/cobra"
)

var addUserCmd = &cobra.Command{
	Use:     "add-user",
	Aliases: []string{"au"},
	Short:   "register a ledger user by address",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		address, e := cmd.Flags().GetString("address")
		if e != nil || address == "" {
			panic("invalid address")
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

		user, err := ledgerService.InitUser(ctx, address)
		if err != nil {
			panic(err)
		}

		cmd.Println("user created:", user.UserID, user.Address)
	},
}

var listUsersCmd = &cobra.Command{
	Use:     "list-users",
	Aliases: []string{"lu"},
	Short:   "list registered users",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		userStore := provideUserStore(database)
		limit, _ := cmd.Flags().GetInt("limit")

		var from uint64
		for {
			users, err := userStore.List(ctx, from, limit)
			if err != nil {
				panic(err)
			}

			for _, user := range users {
				cmd.Println(user.UserID, user.Address)
				from = user.ID
			}

			if len(users) < limit {
				break
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(addUserCmd)
	rootCmd.AddCommand(listUsersCmd)

	addUserCmd.Flags().String("address", "", "user address")
	listUsersCmd.Flags().Int("limit", 100, "page size")
}
