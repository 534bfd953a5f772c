package rest

import (
	"net/http"

	"github.com/go-chi/chi"

	"rwapool/core"
	"rwapool/handler/param"
	"rwapool/handler/render"
	"rwapool/handler/views"
)

func cdpHandler(poolStore core.PoolStore, cdpStore core.ICDPStore, healthService core.IHealthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := chi.URLParam(r, "user")

		cdp, err := cdpStore.Find(r.Context(), user)
		if err != nil {
			render.DomainError(w, err)
			return
		}
		if cdp == nil {
			render.DomainError(w, core.ErrCDPNotFound)
			return
		}

		pool, err := poolStore.Load(r.Context())
		if err != nil {
			render.DomainError(w, err)
			return
		}

		hf, err := healthService.HealthFactor(r.Context(), pool, cdp)
		if err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, views.NewCDP(cdp, hf))
	}
}

type amountParams struct {
	User   string `json:"user"`
	Asset  string `json:"asset"`
	Token  string `json:"token"`
	Amount string `json:"amount"`
}

func depositHandler(supplyService core.ISupplyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params amountParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := parseAmount(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		bTokens, err := supplyService.Deposit(r.Context(), params.User, params.Asset, amount)
		if err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{"b_tokens": views.Amount(bTokens)})
	}
}

func withdrawHandler(supplyService core.ISupplyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params amountParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		bTokens, err := parseAmount(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := supplyService.Withdraw(r.Context(), params.User, params.Asset, bTokens)
		if err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{"amount": views.Amount(amount)})
	}
}

func addCollateralHandler(borrowService core.IBorrowService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params amountParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := parseAmount(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := borrowService.AddCollateral(r.Context(), params.User, params.Token, amount); err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func removeCollateralHandler(borrowService core.IBorrowService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params amountParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := parseAmount(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := borrowService.RemoveCollateral(r.Context(), params.User, params.Token, amount); err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func borrowHandler(borrowService core.IBorrowService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params amountParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := parseAmount(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		dTokens, err := borrowService.Borrow(r.Context(), params.User, params.Asset, amount)
		if err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{"d_tokens": views.Amount(dTokens)})
	}
}

func repayHandler(borrowService core.IBorrowService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params amountParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := parseAmount(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		dTokens, err := borrowService.Repay(r.Context(), params.User, params.Asset, amount)
		if err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{"d_tokens_burned": views.Amount(dTokens)})
	}
}
