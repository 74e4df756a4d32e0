package rest

import (
	"net/http"
	"strings"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/handler/views"
)

func allBanksHandler(bankStore core.IBankStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		banks, err := bankStore.All(r.Context())
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		bankViews := make([]*views.Bank, 0, len(banks))
		for _, b := range banks {
			bankViews = append(bankViews, views.NewBank(b))
		}

		render.JSON(w, bankViews)
	}
}

func bankHandler(bankStore core.IBankStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.ToUpper(param.String(r, "symbol"))
		bank, err := bankStore.FindBySymbol(r.Context(), symbol)
		if err != nil {
			render.NotFoundRequest(w, err)
			return
		}

		render.JSON(w, views.NewBank(bank))
	}
}

func bankBorrowersHandler(bankStore core.IBankStore, positionStore core.IPositionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		symbol := strings.ToUpper(param.String(r, "symbol"))
		bank, err := bankStore.FindBySymbol(ctx, symbol)
		if err != nil {
			render.NotFoundRequest(w, err)
			return
		}

		borrowers, err := positionStore.Borrowers(ctx, bank.AssetID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{
			"asset_id":  bank.AssetID,
			"symbol":    bank.Symbol,
			"borrowers": borrowers,
		})
	}
}
