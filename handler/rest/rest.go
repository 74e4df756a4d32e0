package rest

import (
	"net/http"

	"lending/core"

	"github.com/go-chi/chi"
)

// Handle returns the read-only api router
func Handle(
	bankStore core.IBankStore,
	positionStore core.IPositionStore,
	userStore core.IUserStore,
	accountSrv core.IAccountService,
) http.Handler {
	r := chi.NewRouter()

	r.Get("/banks", allBanksHandler(bankStore))
	r.Get("/banks/{symbol}", bankHandler(bankStore))
	r.Get("/banks/{symbol}/borrowers", bankBorrowersHandler(bankStore, positionStore))
	r.Get("/accounts/{user_id}", accountHandler(bankStore, positionStore, userStore, accountSrv))

	return r
}
