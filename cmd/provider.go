package cmd

import (
	"rwapool/core"
	adminservice "rwapool/service/admin"
	"rwapool/service/auction"
	"rwapool/service/backstop"
	"rwapool/service/block"
	"rwapool/service/borrow"
	"rwapool/service/health"
	"rwapool/service/oracle"
	"rwapool/service/reserve"
	"rwapool/service/supply"
	"rwapool/service/wallet"
	"rwapool/store/cdp"
	"rwapool/store/event"
	"rwapool/store/pool"
	"rwapool/store/transfer"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func providePoolStore(db *db.DB) core.PoolStore {
	return pool.New(db)
}

func provideCDPStore(db *db.DB) core.ICDPStore {
	return cdp.New(db)
}

func provideEventStore(db *db.DB) core.IEventStore {
	return event.New(db)
}

func provideTransferStore(db *db.DB) core.ITransferStore {
	return transfer.New(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

// ------------------service------------------------------------

func provideBlockService() core.IBlockService {
	return block.New(provideConfig())
}

func provideOracleService() core.IOracleService {
	return oracle.New(provideConfig())
}

func provideHealthService(oracleService core.IOracleService) core.IHealthService {
	return health.New(oracleService)
}

func provideTransferService(transferStore core.ITransferStore) core.ITransferService {
	return wallet.New(transferStore)
}

func provideReserveService(db *db.DB,
	poolStore core.PoolStore,
	eventStore core.IEventStore) core.IReserveService {
	return reserve.New(db, poolStore, eventStore)
}

func provideSupplyService(db *db.DB,
	poolStore core.PoolStore,
	eventStore core.IEventStore,
	transferService core.ITransferService) core.ISupplyService {
	return supply.New(db, poolStore, eventStore, transferService)
}

func provideBorrowService(db *db.DB,
	poolStore core.PoolStore,
	cdpStore core.ICDPStore,
	eventStore core.IEventStore,
	transferService core.ITransferService,
	healthService core.IHealthService) core.IBorrowService {
	return borrow.New(db, poolStore, cdpStore, eventStore, transferService, healthService)
}

func provideBackstopService(db *db.DB,
	poolStore core.PoolStore,
	eventStore core.IEventStore,
	transferService core.ITransferService) core.IBackstopService {
	return backstop.New(db, poolStore, eventStore, transferService)
}

func provideAuctionService(db *db.DB,
	poolStore core.PoolStore,
	cdpStore core.ICDPStore,
	eventStore core.IEventStore,
	healthService core.IHealthService,
	oracleService core.IOracleService,
	blockService core.IBlockService,
	transferService core.ITransferService) *auction.Service {
	return auction.New(db, poolStore, cdpStore, eventStore,
		healthService, oracleService, blockService, transferService)
}

func provideAdminService(db *db.DB, poolStore core.PoolStore) core.IAdminService {
	return adminservice.New(provideConfig(), db, poolStore)
}
