package cmd

import (
	"sync"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"

	"rwapool/worker"
	"rwapool/worker/accrual"
	"rwapool/worker/auctioneer"
	"rwapool/worker/cashier"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "rwapool job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		poolStore := providePoolStore(database)
		eventStore := provideEventStore(database)
		transferStore := provideTransferStore(database)
		propertyStore := providePropertyStore(database)
		cdpStore := provideCDPStore(database)

		blockService := provideBlockService()
		oracleService := provideOracleService()
		healthService := provideHealthService(oracleService)
		transferService := provideTransferService(transferStore)
		reserveService := provideReserveService(database, poolStore, eventStore)
		auctionService := provideAuctionService(database, poolStore, cdpStore, eventStore,
			healthService, oracleService, blockService, transferService)

		batch, _ := cmd.Flags().GetInt("cashier.batch")

		workers := []worker.Worker{
			accrual.New(reserveService, propertyStore),
			auctioneer.New(cfg.App.Location, poolStore, auctionService.Interests()),
			cashier.New(provideConfig(), database, transferStore, cashier.Config{
				Batch: batch,
			}),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().Int("cashier.batch", 100, "custom batch for worker cashier")
}
