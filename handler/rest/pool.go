package rest

import (
	"net/http"

	"github.com/go-chi/chi"

	"rwapool/core"
	"rwapool/handler/param"
	"rwapool/handler/render"
	"rwapool/handler/views"
	"rwapool/internal/rate"
)

func poolHandler(poolStore core.PoolStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := poolStore.Load(r.Context())
		if err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, views.NewPool(pool))
	}
}

func reservesHandler(poolStore core.PoolStore, reserveService core.IReserveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := poolStore.Load(r.Context())
		if err != nil {
			render.DomainError(w, err)
			return
		}

		reserveViews := make([]*views.Reserve, 0, len(pool.Reserves))
		for asset, reserve := range pool.Reserves {
			util, err := rate.Utilization(reserve)
			if err != nil {
				render.DomainError(w, err)
				return
			}

			borrowRate, err := rate.AnnualRate(pool.Params(asset), reserve)
			if err != nil {
				render.DomainError(w, err)
				return
			}

			reserveViews = append(reserveViews, views.NewReserve(asset, reserve, util, borrowRate))
		}

		render.JSON(w, reserveViews)
	}
}

func reserveHandler(poolStore core.PoolStore, reserveService core.IReserveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asset := chi.URLParam(r, "asset")

		pool, err := poolStore.Load(r.Context())
		if err != nil {
			render.DomainError(w, err)
			return
		}

		reserve, ok := pool.Reserves[asset]
		if !ok {
			render.DomainError(w, core.ErrReserveNotFound)
			return
		}

		util, err := rate.Utilization(reserve)
		if err != nil {
			render.DomainError(w, err)
			return
		}

		borrowRate, err := rate.AnnualRate(pool.Params(asset), reserve)
		if err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, views.NewReserve(asset, reserve, util, borrowRate))
	}
}

func eventsHandler(eventStore core.IEventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			From  uint64 `json:"from"`
			Limit int    `json:"limit"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Limit <= 0 || params.Limit > 500 {
			params.Limit = 100
		}

		events, err := eventStore.List(r.Context(), params.From, params.Limit)
		if err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, events)
	}
}
