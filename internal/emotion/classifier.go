package emotion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"

	"github.com/virallens/emotionarc/internal/domain"
	"github.com/virallens/emotionarc/internal/metrics"
)

// Classifier maps one text segment to an EmotionResult. It never returns an
// error: a failing model path degrades to the keyword fallback for that call.
type Classifier struct {
	model   domain.ModelClassifier
	lexicon domain.PolarityScorer
	cfg     Config
}

// NewClassifier builds a classifier around the injected capabilities. model
// may be nil (fallback-only operation); lexicon may be nil (model-only
// ensemble).
func NewClassifier(model domain.ModelClassifier, lexicon domain.PolarityScorer, cfg Config) *Classifier {
	return &Classifier{model: model, lexicon: lexicon, cfg: cfg}
}

// Classify produces a structurally valid EmotionResult for any input,
// including empty, whitespace-only, emoji-only and multi-kilobyte text.
func (c *Classifier) Classify(ctx context.Context, text string) domain.EmotionResult {
	timer := prometheus.NewTimer(metrics.ClassificationDuration)
	defer timer.ObserveDuration()

	result := c.classify(ctx, text)
	metrics.ClassificationsTotal.WithLabelValues(string(result.Source)).Inc()
	return result
}

func (c *Classifier) classify(ctx context.Context, text string) domain.EmotionResult {
	if c.model == nil {
		metrics.FallbackActivationsTotal.WithLabelValues("no_model").Inc()
		return c.fallback(text)
	}

	scores, err := c.model.Scores(ctx, text)
	if err != nil {
		// Not fatal and not retried here: the whole point of the fallback is
		// that untrusted content at scale never sees a classification error.
		slog.Debug("Model path failed, using keyword fallback", "error", err)
		metrics.FallbackActivationsTotal.WithLabelValues(fallbackReason(err)).Inc()
		return c.fallback(text)
	}

	modelVec, maxLabelScore := remapModelScores(scores, c.cfg)

	if c.lexicon == nil {
		return domain.EmotionResult{
			Emotions:   modelVec,
			Confidence: clamp01(maxLabelScore),
			Source:     domain.SourceModel,
			ModelInfo:  c.model.Name(),
		}
	}

	polarity := c.lexicon.Polarity(text)
	lexVec := vectorFromPolarity(polarity, c.cfg)

	var blended domain.EmotionVector
	for _, e := range domain.AllEmotions {
		blended.SetScore(e, c.cfg.ModelWeight*modelVec.Score(e)+c.cfg.LexiconWeight*lexVec.Score(e))
	}

	lexConfidence := math.Min(1, math.Abs(polarity.Compound)+0.3)
	confidence := c.cfg.ModelWeight*maxLabelScore + c.cfg.LexiconWeight*lexConfidence

	return domain.EmotionResult{
		Emotions:   blended.Clamped(),
		Confidence: clamp01(confidence),
		Source:     domain.SourceEnsemble,
		ModelInfo:  fmt.Sprintf("%s (%.2f) + vader-lexicon (%.2f)", c.model.Name(), c.cfg.ModelWeight, c.cfg.LexiconWeight),
	}
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		return "breaker_open"
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return "ctx_expired"
	case errors.Is(err, domain.ErrModelUnavailable):
		return "not_warm"
	default:
		return "model_error"
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
