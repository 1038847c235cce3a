package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/virallens/emotionarc/internal/app"
	"github.com/virallens/emotionarc/internal/config"
	"github.com/virallens/emotionarc/internal/database"
	"github.com/virallens/emotionarc/internal/domain"
	"github.com/virallens/emotionarc/internal/emotion"
	"github.com/virallens/emotionarc/internal/emotion/hugface"
	"github.com/virallens/emotionarc/internal/lexicon"
	"github.com/virallens/emotionarc/internal/metrics"
	"github.com/virallens/emotionarc/internal/platform/logging"
	"github.com/virallens/emotionarc/internal/redis"
	"github.com/virallens/emotionarc/internal/server"
	"github.com/virallens/emotionarc/internal/trajectory"
	"github.com/virallens/emotionarc/internal/version"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func emotionConfig(cfg *config.Config) emotion.Config {
	return emotion.Config{
		ModelWeight:        cfg.EnsembleModelWeight,
		LexiconWeight:      cfg.EnsembleLexiconWeight,
		LoveJoyShare:       cfg.LoveJoyShare,
		LoveTrustShare:     cfg.LoveTrustShare,
		ScoreFloor:         cfg.ScoreFloor,
		StrongCompound:     cfg.StrongCompound,
		FallbackPrimary:    cfg.FallbackPrimary,
		FallbackSecondary:  cfg.FallbackSecondary,
		FallbackSuppressed: cfg.FallbackSuppressed,
		FallbackConfidence: cfg.FallbackConfidence,
	}
}

func arcConfig(cfg *config.Config) trajectory.ArcConfig {
	arcCfg := trajectory.DefaultArcConfig()
	arcCfg.RollerCoasterVariance = cfg.ArcRollerCoasterVariance
	arcCfg.TrendThreshold = cfg.ArcTrendThreshold
	arcCfg.SteadyVariance = cfg.ArcSteadyVariance
	arcCfg.VarianceScale = cfg.ArcVarianceScale
	return arcCfg
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	build := version.Get()
	slog.Info("Application starting",
		"env", cfg.AppEnv,
		"port", cfg.Port,
		"build", build.String())

	metrics.BuildInfo.WithLabelValues(build.Version, build.Commit, build.BuildTime, build.GoVersion).Set(1)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(context.Background(), cfg)
	defer func() { _ = redisClient.Close() }()

	cache := redis.NewAnalysisCache(redisClient, cfg.CacheTTL)
	repo := database.NewTrajectoryRepo(pool)

	// Model path is optional: without a base URL the classifier runs on the
	// keyword fallback alone.
	var model domain.ModelClassifier
	var modelClient *hugface.Client
	if cfg.ModelBaseURL != "" {
		modelClient = hugface.NewClient(cfg.ModelBaseURL, cfg.ModelID, cfg.ModelAPIToken)
		model = modelClient

		// The lifecycle logs the load outcome itself.
		go func() { _ = modelClient.Warm(context.Background()) }()
	} else {
		slog.Info("No model base URL configured, running fallback-only")
	}

	classifier := emotion.NewClassifier(model, lexicon.NewScorer(), emotionConfig(cfg))
	mapper := trajectory.NewMapper(classifier, arcConfig(cfg), cfg.SegmentConcurrency, clock)
	appSvc := app.NewService(classifier, mapper, cache, repo)

	// Interface stays nil when no model is configured.
	var modelReady interface{ Ready() bool }
	if modelClient != nil {
		modelReady = modelClient
	}
	srv := server.NewServer(cfg, appSvc, redisClient, pool, modelReady, clock)

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Shutdown complete")
}
