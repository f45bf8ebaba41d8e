// README: Entry point; loads config, builds the first snapshot, starts HTTP server and refreshers.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"zonefare/internal/config"
	"zonefare/internal/engine"
	httptransport "zonefare/internal/http"
	"zonefare/internal/infra"
	"zonefare/internal/maps"
	"zonefare/internal/modules/fare"
	"zonefare/internal/modules/surge"
	"zonefare/internal/modules/tax"
	"zonefare/internal/modules/zone"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.WithError(err).Fatal("postgres init")
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer redisClient.Close()

	loader := engine.StoreLoader{
		Zones: zone.NewStore(dbPool),
		Fares: fare.NewStore(dbPool),
		Surge: surge.NewStore(dbPool),
		Taxes: tax.NewStore(dbPool),
	}

	eng := engine.New(loader, cfg.Engine.Currency, log)
	if err := eng.Refresh(ctx); err != nil {
		log.WithError(err).Fatal("initial snapshot build")
	}

	var routeService *maps.RouteService
	if cfg.Maps.APIKey != "" {
		routeService, err = maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.WithError(err).Fatal("maps init")
		}
	}

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Engine: eng,
		Routes: routeService,
		Log:    log,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go eng.RunInvalidationListener(ctx, redisClient, cfg.Redis.InvalidationChannel)
	go eng.RunRefreshTicker(ctx, time.Duration(cfg.Engine.RefreshIntervalSeconds)*time.Second)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", cfg.HTTP.Addr).Info("serving")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
