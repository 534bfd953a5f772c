package rest

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/spf13/cast"

	"rwapool/core"
	"rwapool/handler/param"
	"rwapool/handler/render"
	"rwapool/handler/views"
	"rwapool/service/auction"
)

func auctionsHandler(poolStore core.PoolStore, blockService core.IBlockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := poolStore.Load(r.Context())
		if err != nil {
			render.DomainError(w, err)
			return
		}

		block, err := blockService.CurrentBlock(r.Context())
		if err != nil {
			render.DomainError(w, err)
			return
		}

		auctionViews := make([]*views.Auction, 0, len(pool.Auctions))
		for id, a := range pool.Auctions {
			lotMod, bidMod := auction.Modifiers(a.Type, block-a.Block)
			auctionViews = append(auctionViews, views.NewAuction(id, a, lotMod, bidMod))
		}

		render.JSON(w, auctionViews)
	}
}

func auctionID(r *http.Request) (uint32, error) {
	id, err := cast.ToUint32E(chi.URLParam(r, "id"))
	if err != nil {
		return 0, err
	}
	return id, nil
}

func initiateLiquidationHandler(liquidationService core.ILiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower        string `json:"borrower"`
			CollateralToken string `json:"collateral_token"`
			DebtAsset       string `json:"debt_asset"`
			Percent         string `json:"percent"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		percent, err := parseRate(params.Percent)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		id, err := liquidationService.Initiate(r.Context(), params.Borrower, params.CollateralToken, params.DebtAsset, percent)
		if err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{"auction_id": id})
	}
}

func fillLiquidationHandler(liquidationService core.ILiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := auctionID(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		var params struct {
			Liquidator string `json:"liquidator"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := liquidationService.Fill(r.Context(), id, params.Liquidator); err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func createBadDebtHandler(badDebtService core.IBadDebtService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower  string `json:"borrower"`
			DebtAsset string `json:"debt_asset"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		id, err := badDebtService.Create(r.Context(), params.Borrower, params.DebtAsset)
		if err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{"auction_id": id})
	}
}

func fillBadDebtHandler(badDebtService core.IBadDebtService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := auctionID(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		var params struct {
			Bidder string `json:"bidder"`
			Amount string `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := parseAmount(params.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		backstopTokens, err := badDebtService.Fill(r.Context(), id, params.Bidder, amount)
		if err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{"backstop_tokens": views.Amount(backstopTokens)})
	}
}

func createInterestHandler(interestService core.IInterestAuctionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Asset string `json:"asset"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		id, err := interestService.Create(r.Context(), params.Asset)
		if err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{"auction_id": id})
	}
}

func fillInterestHandler(interestService core.IInterestAuctionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := auctionID(r)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		var params struct {
			Bidder      string `json:"bidder"`
			Asset       string `json:"asset"`
			FillPercent string `json:"fill_percent"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		fillPercent, err := parseRate(params.FillPercent)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		interest, backstopTokens, err := interestService.Fill(r.Context(), id, params.Bidder, params.Asset, fillPercent)
		if err != nil {
			render.DomainError(w, err)
			return
		}

		render.JSON(w, render.H{
			"interest":        views.Amount(interest),
			"backstop_tokens": views.Amount(backstopTokens),
		})
	}
}
