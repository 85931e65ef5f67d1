package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"bizplan-engine/internal/config"
	"bizplan-engine/internal/constantsregistry"
	"bizplan-engine/internal/handler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if err := config.SetupLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("Invalid logger configuration")
	}

	registry := constantsregistry.New(cfg.RegistryURL, cfg.Constants, cfg.ConstantsSource)
	if len(cfg.PrefetchTenants) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		registry.Prefetch(ctx, cfg.PrefetchTenants)
		cancel()
		log.Info().Strs("tenants", cfg.PrefetchTenants).Msg("Constants prefetched")
	}
	h := handler.New(registry)

	log.Info().
		Str("port", cfg.Port).
		Str("constants_source", cfg.ConstantsSource).
		Bool("registry", cfg.RegistryURL != "").
		Msg("Business plan engine starting")

	server := &fasthttp.Server{
		Handler: h.Handle,
		Name:    "bizplan-engine",
	}
	if err := server.ListenAndServe(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("Server failed")
		os.Exit(1)
	}
}
