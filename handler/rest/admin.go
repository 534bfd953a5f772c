package rest

import (
	"net/http"

	"github.com/go-chi/chi"

	"rwapool/core"
	"rwapool/handler/param"
	"rwapool/handler/render"
)

func handleAdmin(adminService core.IAdminService) http.Handler {
	router := chi.NewRouter()

	router.Post("/init", adminInitHandler(adminService))
	router.Post("/status", adminStatusHandler(adminService))
	router.Post("/collateral-factors", adminCollateralFactorHandler(adminService))
	router.Post("/rate-params", adminRateParamsHandler(adminService))
	router.Post("/token-contracts", adminTokenContractHandler(adminService))
	router.Post("/backstop-token", adminBackstopTokenHandler(adminService))
	router.Post("/take-rate", adminTakeRateHandler(adminService))

	return router
}

func adminInitHandler(adminService core.IAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Admin string `json:"admin"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := adminService.InitPool(r.Context(), params.Admin); err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func adminStatusHandler(adminService core.IAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Admin  string `json:"admin"`
			Status string `json:"status"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		var status core.PoolStatus
		switch params.Status {
		case "active":
			status = core.PoolStatusActive
		case "on_ice":
			status = core.PoolStatusOnIce
		case "frozen":
			status = core.PoolStatusFrozen
		default:
			render.DomainError(w, core.ErrInvalidAmount)
			return
		}

		if err := adminService.SetStatus(r.Context(), params.Admin, status); err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func adminCollateralFactorHandler(adminService core.IAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Admin  string `json:"admin"`
			Token  string `json:"token"`
			Factor string `json:"factor"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		factor, err := parseRate(params.Factor)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := adminService.SetCollateralFactor(r.Context(), params.Admin, params.Token, factor); err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func adminRateParamsHandler(adminService core.IAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Admin      string `json:"admin"`
			Asset      string `json:"asset"`
			TargetUtil string `json:"target_util"`
			MaxUtil    string `json:"max_util"`
			RBase      string `json:"r_base"`
			ROne       string `json:"r_one"`
			RTwo       string `json:"r_two"`
			RThree     string `json:"r_three"`
			Reactivity int64  `json:"reactivity"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		rateParams := &core.InterestRateParams{Reactivity: params.Reactivity}

		fields := []struct {
			raw  string
			dest *int64
		}{
			{params.TargetUtil, &rateParams.TargetUtil},
			{params.MaxUtil, &rateParams.MaxUtil},
			{params.RBase, &rateParams.RBase},
			{params.ROne, &rateParams.ROne},
			{params.RTwo, &rateParams.RTwo},
			{params.RThree, &rateParams.RThree},
		}
		for _, f := range fields {
			v, err := parseRate(f.raw)
			if err != nil {
				render.BadRequest(w, err)
				return
			}
			*f.dest = v
		}

		if err := adminService.SetRateParams(r.Context(), params.Admin, params.Asset, rateParams); err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func adminTokenContractHandler(adminService core.IAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Admin    string `json:"admin"`
			Asset    string `json:"asset"`
			Contract string `json:"contract"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := adminService.SetTokenContract(r.Context(), params.Admin, params.Asset, params.Contract); err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func adminBackstopTokenHandler(adminService core.IAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Admin string `json:"admin"`
			Token string `json:"token"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := adminService.SetBackstopToken(r.Context(), params.Admin, params.Token); err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func adminTakeRateHandler(adminService core.IAdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Admin    string `json:"admin"`
			TakeRate string `json:"take_rate"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		takeRate, err := parseRate(params.TakeRate)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := adminService.SetBackstopTakeRate(r.Context(), params.Admin, takeRate); err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}
