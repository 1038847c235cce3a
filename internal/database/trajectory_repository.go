package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/virallens/emotionarc/internal/domain"
	"github.com/virallens/emotionarc/internal/metrics"
)

// TrajectoryRepo persists trajectories with their segments and transitions.
type TrajectoryRepo struct {
	pool *pgxpool.Pool
}

func NewTrajectoryRepo(pool *pgxpool.Pool) *TrajectoryRepo {
	return &TrajectoryRepo{pool: pool}
}

// Save stores a trajectory atomically: header row, per-segment rows and
// per-transition rows all land in one transaction.
func (r *TrajectoryRepo) Save(ctx context.Context, personaID string, t *domain.Trajectory) error {
	timer := prometheus.NewTimer(metrics.DBQueryDuration.WithLabelValues("save_trajectory"))
	defer timer.ObserveDuration()

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO trajectories (id, persona_id, arc_type, emotional_variance, peak_indices, valley_indices, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, t.ID, personaID, string(t.ArcType), t.Variance, t.PeakIndices, t.ValleyIndices, t.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert trajectory: %w", err)
		}

		for _, s := range t.Segments {
			emotions, err := json.Marshal(s.Result.Emotions)
			if err != nil {
				return fmt.Errorf("encode segment emotions: %w", err)
			}
			_, err = tx.Exec(ctx, `
				INSERT INTO trajectory_segments (trajectory_id, segment_index, text, word_count, emotions, confidence, source, model_info, dominant_emotion, is_peak, is_valley)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			`, t.ID, s.Index, s.Text, s.WordCount, emotions, s.Result.Confidence, string(s.Result.Source), s.Result.ModelInfo, string(s.Dominant), s.IsPeak, s.IsValley)
			if err != nil {
				return fmt.Errorf("insert segment %d: %w", s.Index, err)
			}
		}

		for _, tr := range t.Transitions {
			_, err := tx.Exec(ctx, `
				INSERT INTO trajectory_transitions (trajectory_id, from_index, to_index, from_emotion, to_emotion, strength)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, t.ID, tr.FromIndex, tr.ToIndex, string(tr.From), string(tr.To), tr.Strength)
			if err != nil {
				return fmt.Errorf("insert transition %d: %w", tr.FromIndex, err)
			}
		}

		return nil
	})
	if err != nil {
		metrics.DBErrorsTotal.WithLabelValues("save_trajectory").Inc()
		return err
	}
	return nil
}

// GetByID reassembles a persisted trajectory. Returns domain.ErrAnalysisNotFound
// if the ID is unknown.
func (r *TrajectoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trajectory, error) {
	timer := prometheus.NewTimer(metrics.DBQueryDuration.WithLabelValues("get_trajectory"))
	defer timer.ObserveDuration()

	t := domain.Trajectory{ID: id}
	var arcType string
	var createdAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT arc_type, emotional_variance, peak_indices, valley_indices, created_at
		FROM trajectories
		WHERE id = $1
	`, id).Scan(&arcType, &t.Variance, &t.PeakIndices, &t.ValleyIndices, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAnalysisNotFound
	}
	if err != nil {
		metrics.DBErrorsTotal.WithLabelValues("get_trajectory").Inc()
		return nil, fmt.Errorf("select trajectory: %w", err)
	}
	t.ArcType = domain.ArcType(arcType)
	t.CreatedAt = createdAt

	segments, err := r.loadSegments(ctx, id)
	if err != nil {
		metrics.DBErrorsTotal.WithLabelValues("get_trajectory").Inc()
		return nil, err
	}
	t.Segments = segments

	transitions, err := r.loadTransitions(ctx, id)
	if err != nil {
		metrics.DBErrorsTotal.WithLabelValues("get_trajectory").Inc()
		return nil, err
	}
	t.Transitions = transitions

	return &t, nil
}

func (r *TrajectoryRepo) loadSegments(ctx context.Context, id uuid.UUID) ([]domain.Segment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT segment_index, text, word_count, emotions, confidence, source, model_info, dominant_emotion, is_peak, is_valley
		FROM trajectory_segments
		WHERE trajectory_id = $1
		ORDER BY segment_index
	`, id)
	if err != nil {
		return nil, fmt.Errorf("select segments: %w", err)
	}
	defer rows.Close()

	var segments []domain.Segment
	for rows.Next() {
		var s domain.Segment
		var emotions []byte
		var source, modelInfo, dominant string
		if err := rows.Scan(&s.Index, &s.Text, &s.WordCount, &emotions, &s.Result.Confidence, &source, &modelInfo, &dominant, &s.IsPeak, &s.IsValley); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		if err := json.Unmarshal(emotions, &s.Result.Emotions); err != nil {
			return nil, fmt.Errorf("decode segment emotions: %w", err)
		}
		s.Result.Source = domain.ResultSource(source)
		s.Result.ModelInfo = modelInfo
		s.Dominant = domain.Emotion(dominant)
		segments = append(segments, s)
	}
	return segments, rows.Err()
}

func (r *TrajectoryRepo) loadTransitions(ctx context.Context, id uuid.UUID) ([]domain.Transition, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT from_index, to_index, from_emotion, to_emotion, strength
		FROM trajectory_transitions
		WHERE trajectory_id = $1
		ORDER BY from_index
	`, id)
	if err != nil {
		return nil, fmt.Errorf("select transitions: %w", err)
	}
	defer rows.Close()

	var transitions []domain.Transition
	for rows.Next() {
		var tr domain.Transition
		var from, to string
		if err := rows.Scan(&tr.FromIndex, &tr.ToIndex, &from, &to, &tr.Strength); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		tr.From = domain.Emotion(from)
		tr.To = domain.Emotion(to)
		transitions = append(transitions, tr)
	}
	return transitions, rows.Err()
}
