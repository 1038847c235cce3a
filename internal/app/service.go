package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/virallens/emotionarc/internal/domain"
)

// Classifier scores a single text. Implemented by emotion.Classifier.
type Classifier interface {
	Classify(ctx context.Context, text string) domain.EmotionResult
}

// Mapper runs a full trajectory analysis. Implemented by trajectory.Mapper.
type Mapper interface {
	MapText(ctx context.Context, text string) *domain.Trajectory
	Map(ctx context.Context, texts []string) *domain.Trajectory
}

// Service is the application layer, the only component that references
// multiple domain components. It orchestrates all use cases.
type Service struct {
	classifier Classifier
	mapper     Mapper
	cache      domain.AnalysisCache
	repo       domain.TrajectoryRepository
}

// NewService creates the application layer service.
// cache and repo may be nil for degraded operation without Redis or Postgres.
func NewService(classifier Classifier, mapper Mapper, cache domain.AnalysisCache, repo domain.TrajectoryRepository) *Service {
	return &Service{
		classifier: classifier,
		mapper:     mapper,
		cache:      cache,
		repo:       repo,
	}
}

// AnalyzeEmotion scores one text, consulting the result cache first. Cache
// failures degrade to a plain classification; they never fail the request.
func (s *Service) AnalyzeEmotion(ctx context.Context, text string) domain.EmotionResult {
	if s.cache == nil {
		return s.classifier.Classify(ctx, text)
	}

	key := contentKey(text)
	if cached, ok, err := s.cache.GetResult(ctx, key); err != nil {
		slog.Warn("Result cache lookup failed", "error", err)
	} else if ok {
		return *cached
	}

	result := s.classifier.Classify(ctx, text)
	if err := s.cache.SetResult(ctx, key, &result); err != nil {
		slog.Warn("Result cache store failed", "error", err)
	}
	return result
}

// AnalyzeTrajectory runs a full trajectory analysis on raw text and persists
// it. segments, when non-empty, bypasses sentence splitting and analyzes the
// given pre-split segments instead.
func (s *Service) AnalyzeTrajectory(ctx context.Context, personaID, text string, segments []string) (*domain.Trajectory, error) {
	var trajectory *domain.Trajectory
	if len(segments) > 0 {
		trajectory = s.mapper.Map(ctx, segments)
	} else {
		trajectory = s.mapper.MapText(ctx, text)
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, personaID, trajectory); err != nil {
			return nil, fmt.Errorf("persist trajectory: %w", err)
		}
	}

	slog.Info("Trajectory analyzed",
		"trajectory_id", trajectory.ID.String(),
		"segments", len(trajectory.Segments),
		"arc_type", string(trajectory.ArcType))
	return trajectory, nil
}

// GetTrajectory retrieves a stored analysis by ID.
func (s *Service) GetTrajectory(ctx context.Context, id uuid.UUID) (*domain.Trajectory, error) {
	if s.repo == nil {
		return nil, domain.ErrAnalysisNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// contentKey derives the cache key for a text. Identical content always maps
// to the same key regardless of which instance computed it.
func contentKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
