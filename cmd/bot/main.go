package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"infinite-experiment/logbook/internal/api"
	"infinite-experiment/logbook/internal/auth"
	"infinite-experiment/logbook/internal/bot"
	"infinite-experiment/logbook/internal/common"
	"infinite-experiment/logbook/internal/config"
	"infinite-experiment/logbook/internal/db"
	"infinite-experiment/logbook/internal/jobs"
	"infinite-experiment/logbook/internal/logging"
	"infinite-experiment/logbook/internal/metrics"
	"infinite-experiment/logbook/internal/routes"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// Per-IP budget for the read-only API
const (
	apiRequestsPerSecond = 5
	apiBurst             = 20
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv, cfg.LogLevel); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Logbook starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.Database.Driver,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	store, err := db.Open(cfg.Database)
	if err != nil {
		logging.Fatal("Failed to open database", "error", err.Error())
	}
	defer store.Close()
	logging.Info("Database ready", "driver", cfg.Database.Driver)

	cache := common.NewCache(cfg.Redis)
	defer cache.Close()

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)
	deps := api.InitDependencies(store, cache, metricsReg, auth.NewTokenService([]byte(cfg.APISecret)))
	if !deps.Services.Tokens.Enabled() {
		logging.Warn("API_SECRET not set, /api/v1 is disabled")
	}

	commandRouter := bot.NewRouter(
		bot.NewHandlers(deps.Services.FlightLog, deps.Services.PilotStats),
		common.NewKeyedLimiter(cfg.CommandRate, cfg.CommandBurst),
		metricsReg,
	)
	discord, err := bot.New(cfg.Token, cfg.GuildID, commandRouter)
	if err != nil {
		logging.Fatal("Failed to create bot", "error", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler, err := jobs.InitializeJobs(ctx, cfg.RankSyncSchedule, deps.Jobs.RankSync)
	if err != nil {
		logging.Fatal("Failed to schedule jobs", "error", err.Error())
	}
	scheduler.Start()

	upSince := time.Now()
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           routes.RegisterRoutes(deps, discord, prometheus.DefaultGatherer, common.NewKeyedLimiter(apiRequestsPerSecond, apiBurst, "127.0.0.1"), upSince),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("Server starting", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return discord.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		logging.Error("Logbook stopped with error", "error", err.Error())
	}

	<-scheduler.Stop().Done()
	logging.Info("Logbook shut down")
}
