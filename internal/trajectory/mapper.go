package trajectory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/virallens/emotionarc/internal/domain"
	"github.com/virallens/emotionarc/internal/metrics"
)

// SegmentClassifier is the subset of the emotion classifier the mapper needs.
type SegmentClassifier interface {
	Classify(ctx context.Context, text string) domain.EmotionResult
}

// Mapper orchestrates one trajectory analysis: per-segment classification,
// arc classification and transition analysis. Stateless; safe for many
// concurrent Map calls.
type Mapper struct {
	classifier  SegmentClassifier
	arcCfg      ArcConfig
	concurrency int
	clock       clockwork.Clock
}

// NewMapper builds a mapper. concurrency bounds how many segments classify in
// parallel within one call; values < 1 mean unbounded.
func NewMapper(classifier SegmentClassifier, arcCfg ArcConfig, concurrency int, clock clockwork.Clock) *Mapper {
	return &Mapper{
		classifier:  classifier,
		arcCfg:      arcCfg,
		concurrency: concurrency,
		clock:       clock,
	}
}

// MapText splits raw text into sentence segments and analyzes them.
func (m *Mapper) MapText(ctx context.Context, text string) *domain.Trajectory {
	return m.Map(ctx, SplitSentences(text))
}

// Map analyzes pre-segmented texts. Segments classify independently and
// concurrently; there is no cross-segment state. Empty, oversized and
// punctuation-only segments are all acceptable input.
func (m *Mapper) Map(ctx context.Context, texts []string) *domain.Trajectory {
	timer := prometheus.NewTimer(metrics.TrajectoryDuration)
	defer timer.ObserveDuration()

	results := make([]domain.EmotionResult, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	if m.concurrency > 0 {
		g.SetLimit(m.concurrency)
	}
	for i, text := range texts {
		g.Go(func() error {
			results[i] = m.classifier.Classify(gctx, text)
			return nil
		})
	}
	// Workers never return errors: classification cannot fail.
	_ = g.Wait()

	segments := make([]domain.Segment, len(texts))
	vectors := make([]domain.EmotionVector, len(texts))
	for i, text := range texts {
		segments[i] = domain.Segment{
			Index:     i,
			Text:      text,
			WordCount: len(strings.Fields(text)),
			Result:    results[i],
			Dominant:  results[i].Emotions.Dominant(),
		}
		vectors[i] = results[i].Emotions
	}

	arc := ClassifyArc(vectors, m.arcCfg)
	for _, i := range arc.PeakIndices {
		segments[i].IsPeak = true
	}
	for _, i := range arc.ValleyIndices {
		segments[i].IsValley = true
	}

	summary := AnalyzeTransitions(vectors)

	metrics.TrajectoriesTotal.WithLabelValues(string(arc.ArcType)).Inc()
	metrics.TrajectorySegments.Observe(float64(len(segments)))

	return &domain.Trajectory{
		ID:            uuid.New(),
		Segments:      segments,
		ArcType:       arc.ArcType,
		Variance:      arc.Variance,
		PeakIndices:   arc.PeakIndices,
		ValleyIndices: arc.ValleyIndices,
		Transitions:   summary.Transitions,
		CreatedAt:     m.clock.Now().UTC(),
	}
}
