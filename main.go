package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"leaguewatch/internal/bot"
	"leaguewatch/internal/config"
	"leaguewatch/internal/poller"
	"leaguewatch/internal/riotapi"
	"leaguewatch/internal/store"
	"leaguewatch/internal/telemetry"
	"leaguewatch/internal/tracker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not load configuration: %v", err))
		os.Exit(1)
	}
	setLogLevel(cfg.LogLevel)

	db, err := store.NewStore(cfg.DatabasePath)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not open store: %v", err))
		os.Exit(1)
	}
	defer db.Close()

	// Seed the shared api key from the environment if the store does
	// not have one yet
	if cfg.RiotApiKey != "" {
		if key, err := db.SharedToken(riotapi.CredentialService); err == nil && key == "" {
			if err := db.SetSharedToken(riotapi.CredentialService, cfg.RiotApiKey); err != nil {
				log.Error().Msg(fmt.Sprintf("Could not seed api key: %v", err))
			}
		}
	}

	riot := riotapi.NewClient(db, cfg.HttpTimeout)

	discordBot, err := bot.NewBot(cfg.DiscordToken, db, riot)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not create discord bot: %v", err))
		os.Exit(1)
	}
	if err := discordBot.Start(); err != nil {
		log.Error().Msg(fmt.Sprintf("Could not start discord bot: %v", err))
		os.Exit(1)
	}
	defer discordBot.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := bot.NewSink(discordBot.Session())
	games := poller.NewPoller(db, riot, tracker.NewTracker(db), sink, cfg.PollInterval, cfg.MaxConcurrent)
	go games.Run(ctx)

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	// Keep running until interrupted
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals

	log.Info().Msg("Shutting down")
	cancel()
	games.Stop()
}

func setLogLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", telemetry.Handler())
	log.Info().Msg(fmt.Sprintf("Serving metrics on %s", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Msg(fmt.Sprintf("Metrics server stopped: %v", err))
	}
}
