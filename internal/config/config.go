package config

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	// Transformer model adapter. An empty MODEL_BASE_URL runs the service
	// fallback-only (no model path at all).
	ModelBaseURL  string `env:"MODEL_BASE_URL" default:"https://api-inference.huggingface.co"`
	ModelID       string `env:"MODEL_ID" default:"j-hartmann/emotion-english-distilroberta-base"`
	ModelAPIToken string `env:"MODEL_API_TOKEN"`

	// Ensemble tuning. The weight pairs must each sum to 1.0.
	EnsembleModelWeight   float64 `env:"ENSEMBLE_MODEL_WEIGHT" default:"0.7"`
	EnsembleLexiconWeight float64 `env:"ENSEMBLE_LEXICON_WEIGHT" default:"0.3"`
	LoveJoyShare          float64 `env:"LOVE_JOY_SHARE" default:"0.6"`
	LoveTrustShare        float64 `env:"LOVE_TRUST_SHARE" default:"0.4"`
	ScoreFloor            float64 `env:"SCORE_FLOOR" default:"0.1"`
	StrongCompound        float64 `env:"STRONG_COMPOUND" default:"0.5"`
	FallbackPrimary       float64 `env:"FALLBACK_PRIMARY" default:"0.8"`
	FallbackSecondary     float64 `env:"FALLBACK_SECONDARY" default:"0.7"`
	FallbackSuppressed    float64 `env:"FALLBACK_SUPPRESSED" default:"0.05"`
	FallbackConfidence    float64 `env:"FALLBACK_CONFIDENCE" default:"0.7"`

	// Arc classification tuning.
	ArcRollerCoasterVariance float64 `env:"ARC_ROLLER_COASTER_VARIANCE" default:"0.4"`
	ArcTrendThreshold        float64 `env:"ARC_TREND_THRESHOLD" default:"0.3"`
	ArcSteadyVariance        float64 `env:"ARC_STEADY_VARIANCE" default:"0.2"`
	ArcVarianceScale         float64 `env:"ARC_VARIANCE_SCALE" default:"4"`

	// SegmentConcurrency bounds parallel per-segment classification within
	// one trajectory analysis.
	SegmentConcurrency int `env:"SEGMENT_CONCURRENCY" default:"4"`

	// Analysis cache.
	CacheTTL time.Duration `env:"CACHE_TTL" default:"15m"`

	// Per-client rate limiting on the analyze endpoints.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" default:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" default:"40"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"REDIS_URL":    cfg.RedisURL,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if !sumsToOne(cfg.EnsembleModelWeight, cfg.EnsembleLexiconWeight) {
		return fmt.Errorf("ENSEMBLE_MODEL_WEIGHT + ENSEMBLE_LEXICON_WEIGHT must sum to 1.0, got %v + %v",
			cfg.EnsembleModelWeight, cfg.EnsembleLexiconWeight)
	}
	if !sumsToOne(cfg.LoveJoyShare, cfg.LoveTrustShare) {
		return fmt.Errorf("LOVE_JOY_SHARE + LOVE_TRUST_SHARE must sum to 1.0, got %v + %v",
			cfg.LoveJoyShare, cfg.LoveTrustShare)
	}
	if cfg.ScoreFloor < 0 || cfg.ScoreFloor >= 1 {
		return fmt.Errorf("SCORE_FLOOR must be in [0,1), got %v", cfg.ScoreFloor)
	}
	if cfg.ArcVarianceScale <= 0 {
		return fmt.Errorf("ARC_VARIANCE_SCALE must be positive, got %v", cfg.ArcVarianceScale)
	}
	if cfg.SegmentConcurrency < 1 {
		return fmt.Errorf("SEGMENT_CONCURRENCY must be at least 1, got %d", cfg.SegmentConcurrency)
	}

	return nil
}

func sumsToOne(a, b float64) bool {
	return math.Abs(a+b-1.0) < 1e-9
}
