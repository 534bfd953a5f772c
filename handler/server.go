package handler

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"rwapool/core"
	"rwapool/handler/hc"
	"rwapool/handler/rest"
)

// Server server
type Server struct {
	cfg     *core.Config
	version string

	poolStore  core.PoolStore
	cdpStore   core.ICDPStore
	eventStore core.IEventStore

	reserveService     core.IReserveService
	healthService      core.IHealthService
	blockService       core.IBlockService
	supplyService      core.ISupplyService
	borrowService      core.IBorrowService
	backstopService    core.IBackstopService
	liquidationService core.ILiquidationService
	badDebtService     core.IBadDebtService
	interestService    core.IInterestAuctionService
	adminService       core.IAdminService
}

// New new server
func New(cfg *core.Config,
	version string,
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
	adminService core.IAdminService) Server {
	return Server{
		cfg:                cfg,
		version:            version,
		poolStore:          poolStore,
		cdpStore:           cdpStore,
		eventStore:         eventStore,
		reserveService:     reserveService,
		healthService:      healthService,
		blockService:       blockService,
		supplyService:      supplyService,
		borrowService:      borrowService,
		backstopService:    backstopService,
		liquidationService: liquidationService,
		badDebtService:     badDebtService,
		interestService:    interestService,
		adminService:       adminService,
	}
}

// Handle handle all routes
func (s Server) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Mount("/hc", hc.Handle(s.version))
	r.Mount("/api", rest.Handle(
		s.poolStore,
		s.cdpStore,
		s.eventStore,
		s.reserveService,
		s.healthService,
		s.blockService,
		s.supplyService,
		s.borrowService,
		s.backstopService,
		s.liquidationService,
		s.badDebtService,
		s.interestService,
		s.adminService,
	))

	return r
}
