package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/changlade/intelligent-dashboard-demo/internal/config"
	"github.com/changlade/intelligent-dashboard-demo/internal/connections"
	"github.com/changlade/intelligent-dashboard-demo/internal/handlers"
	"github.com/changlade/intelligent-dashboard-demo/internal/infrastructure/genie"
	"github.com/changlade/intelligent-dashboard-demo/internal/infrastructure/redis"
	"github.com/changlade/intelligent-dashboard-demo/internal/infrastructure/serving"
	"github.com/changlade/intelligent-dashboard-demo/internal/middleware"
	"github.com/changlade/intelligent-dashboard-demo/internal/services/assistant"
	"github.com/changlade/intelligent-dashboard-demo/internal/services/dashboard"
	"github.com/changlade/intelligent-dashboard-demo/internal/services/recommend"
	"github.com/changlade/intelligent-dashboard-demo/internal/services/resultcache"
)

func main() {
	// A missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load server configuration")
	}
	initLogging(cfg)

	genieService := genie.NewService()
	redisService := redis.NewService()
	cacheService := resultcache.NewService(redisService)
	servingService := serving.NewService()
	dashboardService := dashboard.NewService()

	// A nil *serving.Service must stay a nil interface, not a typed nil.
	var completer recommend.Completer
	if servingService != nil {
		completer = servingService
	}
	recommendService := recommend.NewService(completer)

	hub := connections.NewHub(connections.DefaultTimeouts)
	messageLog := assistant.NewMessageLog(hub)
	workflow := assistant.NewWorkflow(genieService, messageLog)

	router := handlers.NewRouter(handlers.Deps{
		Genie:     genieService,
		Cache:     cacheService,
		Workflow:  workflow,
		Log:       messageLog,
		Hub:       hub,
		Dashboard: dashboardService,
		Recommend: recommendService,
	})

	// Hijacked websocket connections are exempt from these timeouts.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.CORS(router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
	}

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Server starting")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Server stopped unexpectedly")
	}
}

func initLogging(cfg *config.ServerConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
