package main

import (
	"context"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotelos_gateway/internal/adapters/hotelos"
	"hotelos_gateway/internal/adapters/observability"
	redisad "hotelos_gateway/internal/adapters/redis"
	"hotelos_gateway/internal/app"
	"hotelos_gateway/internal/domain"
	"hotelos_gateway/internal/shared"
)

// warmer pre-fetches undated hotel offers into the Redis offer cache.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("base", cfg.APIBase).
		Int("workers", cfg.WarmWorkers).
		Int("hotels", len(cfg.WarmHotelIDs)).
		Msg("warmer starting")

	api, err := hotelos.New(hotelos.Options{
		BaseURL: cfg.APIBase,
		Timeout: cfg.APITimeout,
		RPS:     cfg.APIRPS,
		Logging: cfg.APILogging,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize HotelOS client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}
	offers := app.NewOfferService(api, cache, cfg.CacheTTL)

	hotelIDs := cfg.WarmHotelIDs
	if len(hotelIDs) == 0 {
		hotelIDs = listAll(ctx, api)
	}

	sem := semaphore.NewWeighted(int64(cfg.WarmWorkers))
	var (
		wg     sync.WaitGroup
		failed atomic.Int64
	)
	for _, id := range hotelIDs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("warming interrupted")
			break
		}

		wg.Add(1)
		go func(hotelID int64) {
			defer wg.Done()
			defer sem.Release(1)

			if err := offers.Warm(ctx, hotelID); err != nil {
				failed.Add(1)
				log.Warn().Int64("id", hotelID).Err(err).Msg("warm failed")
				return
			}
			log.Debug().Int64("id", hotelID).Msg("warm ok")
		}(id)
	}

	wg.Wait()
	log.Info().Int("hotels", len(hotelIDs)).Int64("failed", failed.Load()).Msg("warming completed")
}

// listAll walks every page of the hotel list.
func listAll(ctx context.Context, api domain.HotelAPI) []int64 {
	var out []int64
	for page := 0; ; page++ {
		p, err := api.ListHotels(ctx, domain.HotelsQuery{PageQuery: domain.PageQuery{Page: page, Size: 50}})
		if err != nil {
			log.Fatal().Err(err).Int("page", page).Msg("hotel list failed")
		}
		for _, h := range p.Content {
			out = append(out, h.ID)
		}
		if len(p.Content) == 0 || page+1 >= p.TotalPages {
			return out
		}
	}
}
