package main

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"case-armory/internal/config"
	"case-armory/internal/gacha"
	"case-armory/internal/logging"
	"case-armory/internal/store"
	httptransport "case-armory/internal/transport/http"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	st, err := store.New(cfg.Server.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer st.Close()
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}

	if cfg.Server.SeedDemoCatalog {
		if err := st.EnsureDemoCatalog(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("seed demo catalog failed")
		}
	}
	if cfg.Server.AdminAPIKey == "" {
		log.Warn().Msg("ADMIN_API_KEY not set; admin endpoints reject every request")
	}

	drawer := gacha.NewDrawer(rand.NewSource(time.Now().UnixNano()))
	r := httptransport.NewRouter(st, cfg.Server, drawer)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
