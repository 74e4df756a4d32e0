package rest

import (
	"net/http"
	"time"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/handler/views"
	"lending/internal/ledger"

	"github.com/asaskevich/govalidator"
)

func accountHandler(
	bankStore core.IBankStore,
	positionStore core.IPositionStore,
	userStore core.IUserStore,
	accountSrv core.IAccountService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := param.String(r, "user_id")
		if !govalidator.IsUUID(userID) {
			render.BadRequest(w, core.ErrInvalidArgument)
			return
		}

		// valuation time defaults to now; ?at= pins it to a unix timestamp
		var params struct {
			At int64 `json:"at"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if _, err := userStore.Find(ctx, userID); err != nil {
			render.NotFoundRequest(w, err)
			return
		}

		positions, err := positionStore.FindByUser(ctx, userID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		banks, err := bankStore.AllAsMap(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		now := time.Now()
		if params.At > 0 {
			now = time.Unix(params.At, 0)
		}

		collateral, err := accountSrv.CollateralValue(ctx, userID, now)
		if err != nil {
			render.BadRequest(w, err)
			return
		}
		debt, err := accountSrv.DebtValue(ctx, userID, now)
		if err != nil {
			render.BadRequest(w, err)
			return
		}
		power, err := accountSrv.BorrowingPower(ctx, userID, now)
		if err != nil {
			render.BadRequest(w, err)
			return
		}
		healthFactor, err := accountSrv.HealthFactor(ctx, userID, now)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		positionViews := make([]*views.Position, 0, len(positions))
		for _, p := range positions {
			view := &views.Position{Position: *p}
			if bank, ok := banks[p.AssetID]; ok {
				view.Symbol = bank.Symbol
			}
			positionViews = append(positionViews, view)
		}

		render.JSON(w, &views.Account{
			UserID:          userID,
			CollateralValue: collateral,
			DebtValue:       debt,
			BorrowingPower:  power,
			HealthFactor:    healthFactor,
			Liquidatable:    ledger.Liquidatable(healthFactor),
			Positions:       positionViews,
		})
	}
}
