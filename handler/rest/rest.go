package rest

import (
	"errors"
	"net/http"

	sdkmath "cosmossdk.io/math"
	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"

	"rwapool/core"
	"rwapool/handler/render"
)

// Handle handle rest api request
func Handle(
	poolStore core.PoolStore,
	cdpStore core.ICDPStore,
	eventStore core.IEventStore,
	reserveService core.IReserveService,
	healthService core.IHealthService,
	blockService core.IBlockService,
	supplyService core.ISupplyService,
	borrowService core.IBorrowService,
	backstopService core.IBackstopService,
	liquidationService core.ILiquidationService,
	badDebtService core.IBadDebtService,
	interestService core.IInterestAuctionService,
	adminService core.IAdminService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/pool", poolHandler(poolStore))
	router.Get("/reserves", reservesHandler(poolStore, reserveService))
	router.Get("/reserves/{asset}", reserveHandler(poolStore, reserveService))
	router.Get("/cdps/{user}", cdpHandler(poolStore, cdpStore, healthService))
	router.Get("/events", eventsHandler(eventStore))
	router.Get("/auctions", auctionsHandler(poolStore, blockService))

	router.Post("/deposits", depositHandler(supplyService))
	router.Post("/withdrawals", withdrawHandler(supplyService))
	router.Post("/collaterals", addCollateralHandler(borrowService))
	router.Post("/collaterals/remove", removeCollateralHandler(borrowService))
	router.Post("/borrows", borrowHandler(borrowService))
	router.Post("/repayments", repayHandler(borrowService))

	router.Post("/liquidations", initiateLiquidationHandler(liquidationService))
	router.Post("/liquidations/{id}/fill", fillLiquidationHandler(liquidationService))
	router.Post("/bad-debts", createBadDebtHandler(badDebtService))
	router.Post("/bad-debts/{id}/fill", fillBadDebtHandler(badDebtService))
	router.Post("/interest-auctions", createInterestHandler(interestService))
	router.Post("/interest-auctions/{id}/fill", fillInterestHandler(interestService))

	router.Post("/backstop/deposits", backstopDepositHandler(backstopService))
	router.Post("/backstop/withdrawals", backstopQueueHandler(backstopService))
	router.Post("/backstop/claims", backstopClaimHandler(backstopService))

	router.Mount("/admin", handleAdmin(adminService))

	return router
}

// parseAmount decimal string to a 7 decimal fixed point integer
func parseAmount(s string) (sdkmath.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return sdkmath.Int{}, err
	}

	return sdkmath.NewIntFromBigInt(d.Shift(7).Truncate(0).BigInt()), nil
}

// parseRate decimal string (e.g. "0.5") to a 7 decimal rate
func parseRate(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}

	return d.Shift(7).Truncate(0).IntPart(), nil
}
