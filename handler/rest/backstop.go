package rest

import (
	"net/http"

	"rwapool/core"
	"rwapool/handler/param"
	"rwapool/handler/render"
	"rwapool/handler/views"
)

type backstopParams struct {
	User   string `json:"user"`
	Amount string `json:"amount"`
}

func backstopDepositHandler(backstopService core.IBackstopService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params backstopParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := parseAmount(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := backstopService.Deposit(r.Context(), params.User, amount); err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func backstopQueueHandler(backstopService core.IBackstopService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params backstopParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := parseAmount(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := backstopService.QueueWithdrawal(r.Context(), params.User, amount); err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func backstopClaimHandler(backstopService core.IBackstopService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params backstopParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := backstopService.Withdraw(r.Context(), params.User)
		if err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{"amount": views.Amount(amount)})
	}
}
