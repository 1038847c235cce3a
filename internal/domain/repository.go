package domain

import (
	"context"

	"github.com/google/uuid"
)

// TrajectoryRepository persists completed analyses for later retrieval.
type TrajectoryRepository interface {
	Save(ctx context.Context, personaID string, trajectory *Trajectory) error
	GetByID(ctx context.Context, id uuid.UUID) (*Trajectory, error)
}

// AnalysisCache short-circuits repeated classification of identical content.
// Keys are content hashes; entries expire via TTL.
type AnalysisCache interface {
	GetResult(ctx context.Context, key string) (*EmotionResult, bool, error)
	SetResult(ctx context.Context, key string, result *EmotionResult) error
}
