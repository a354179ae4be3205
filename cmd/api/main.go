package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"cart-api/internal/config"
	"cart-api/internal/db"
	"cart-api/internal/httpserver"
	"cart-api/internal/logging"
	cartrepo "cart-api/internal/repository/cart"
	productrepo "cart-api/internal/repository/product"
	cartsvc "cart-api/internal/service/cart"
	"cart-api/internal/sweeper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to db")
	}
	defer dbpool.Close()

	cartRepo := cartrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool)
	cartService := cartsvc.New(cartRepo, productRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc: cartService,
		Catalog: productRepo,
	}, cfg.CORSAllowOrigins)
	if err != nil {
		logger.Fatal().Err(err).Msg("init server")
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	var wg sync.WaitGroup
	if cfg.SweepEnabled {
		sw := sweeper.New(cartRepo, logger, cfg.SweepInterval, cfg.CartIdleAfter, cfg.CartPurgeAfter)
		wg.Add(1)
		go func() {
			defer wg.Done()
			sw.Run(sweepCtx)
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server error")
	}

	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logger.Info().Msg("server stopped")
	}

	wg.Wait()
}
