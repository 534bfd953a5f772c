package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rwapool/handler"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run rwapool api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		poolStore := providePoolStore(database)
		cdpStore := provideCDPStore(database)
		eventStore := provideEventStore(database)
		transferStore := provideTransferStore(database)

		blockService := provideBlockService()
		oracleService := provideOracleService()
		healthService := provideHealthService(oracleService)
		transferService := provideTransferService(transferStore)
		reserveService := provideReserveService(database, poolStore, eventStore)
		supplyService := provideSupplyService(database, poolStore, eventStore, transferService)
		borrowService := provideBorrowService(database, poolStore, cdpStore, eventStore, transferService, healthService)
		backstopService := provideBackstopService(database, poolStore, eventStore, transferService)
		auctionService := provideAuctionService(database, poolStore, cdpStore, eventStore,
			healthService, oracleService, blockService, transferService)
		adminService := provideAdminService(database, poolStore)

		svr := handler.New(provideConfig(),
			rootCmd.Version,
			poolStore,
			cdpStore,
			eventStore,
			reserveService,
			healthService,
			blockService,
			supplyService,
			borrowService,
			backstopService,
			auctionService.Liquidations(),
			auctionService.BadDebts(),
			auctionService.Interests(),
			adminService)

		mux := chi.NewMux()
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)
		mux.Mount("/", svr.Handle())

		port, _ := cmd.Flags().GetInt("port")
		if port <= 0 {
			port = cfg.App.Port
		}
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		done := make(chan struct{}, 1)
		go func() {
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		}()

		logrus.Infoln("serve at", addr)
		err := server.ListenAndServe()
		if err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 0, "server port, default from config")
}
