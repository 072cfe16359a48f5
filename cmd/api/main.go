package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "hotelos_gateway/internal/adapters/http_server"
	"hotelos_gateway/internal/adapters/hotelos"
	"hotelos_gateway/internal/adapters/observability"
	redisad "hotelos_gateway/internal/adapters/redis"
	"hotelos_gateway/internal/app"
	"hotelos_gateway/internal/i18n"
	"hotelos_gateway/internal/loading"
	"hotelos_gateway/internal/shared"
	mysqlrepo "hotelos_gateway/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(ctx, reg, cfg.MetricsAddr)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	if err := mysqlrepo.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	log.Info().Msg("database connection ok")

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		// offers and sessions fall through to the backend
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable")
	}

	// backend
	tracker := loading.New(observability.InFlight)
	api, err := hotelos.New(hotelos.Options{
		BaseURL: cfg.APIBase,
		Timeout: cfg.APITimeout,
		RPS:     cfg.APIRPS,
		Logging: cfg.APILogging,
		Tracker: tracker,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize HotelOS client")
	}

	// http
	// backend retries never start a backoff past this deadline
	srv := server.New(i18n.New(cfg.DefaultLang), cfg.APITimeout+5*time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	offers := app.NewOfferService(api, cache, cfg.CacheTTL)
	srv.MountHandlers(&server.Handlers{
		Offers:       offers,
		Bookings:     app.NewBookingService(api, mysqlrepo.New(db), offers),
		Sessions:     app.NewSessionService(api, cache, cfg.SessionTTL),
		Admin:        app.NewAdminService(api, offers),
		Loading:      tracker,
		CookieSecure: cfg.CookieSecure,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("backend", cfg.APIBase).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
