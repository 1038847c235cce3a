package emotion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virallens/emotionarc/internal/domain"
)

// --- Mocks ---

type mockModel struct {
	scores []domain.LabelScore
	err    error
}

func (m *mockModel) Scores(_ context.Context, _ string) ([]domain.LabelScore, error) {
	return m.scores, m.err
}

func (m *mockModel) Name() string { return "mock-model" }

type mockLexicon struct {
	scores domain.PolarityScores
}

func (m *mockLexicon) Polarity(_ string) domain.PolarityScores {
	return m.scores
}

func TestClassifyNilModelUsesFallback(t *testing.T) {
	c := NewClassifier(nil, nil, DefaultConfig())

	result := c.Classify(context.Background(), "I am so happy today")

	assert.Equal(t, domain.SourceFallback, result.Source)
	assert.Equal(t, 0.8, result.Emotions.Joy)
}

func TestClassifyModelErrorUsesFallback(t *testing.T) {
	model := &mockModel{err: errors.New("inference failed")}
	c := NewClassifier(model, &mockLexicon{}, DefaultConfig())

	result := c.Classify(context.Background(), "I am so happy today")

	assert.Equal(t, domain.SourceFallback, result.Source)
	assert.Equal(t, 0.7, result.Confidence)
}

func TestClassifyBreakerOpenUsesFallback(t *testing.T) {
	model := &mockModel{err: gobreaker.ErrOpenState}
	c := NewClassifier(model, &mockLexicon{}, DefaultConfig())

	result := c.Classify(context.Background(), "terrible news")

	assert.Equal(t, domain.SourceFallback, result.Source)
	assert.Equal(t, 0.8, result.Emotions.Sadness)
}

func TestClassifyModelOnly(t *testing.T) {
	model := &mockModel{scores: []domain.LabelScore{
		{Label: "joy", Score: 0.9},
		{Label: "anger", Score: 0.05},
	}}
	c := NewClassifier(model, nil, DefaultConfig())

	result := c.Classify(context.Background(), "what a day")

	assert.Equal(t, domain.SourceModel, result.Source)
	assert.Equal(t, "mock-model", result.ModelInfo)
	assert.Equal(t, 0.9, result.Emotions.Joy)
	assert.InDelta(t, 0.9, result.Confidence, 1e-9)
}

func TestClassifyEnsembleBlend(t *testing.T) {
	model := &mockModel{scores: []domain.LabelScore{{Label: "joy", Score: 0.9}}}
	lex := &mockLexicon{scores: domain.PolarityScores{Compound: 0.8, Positive: 0.7, Neutral: 0.3}}
	c := NewClassifier(model, lex, DefaultConfig())

	result := c.Classify(context.Background(), "this is wonderful")

	require.Equal(t, domain.SourceEnsemble, result.Source)
	assert.Contains(t, result.ModelInfo, "mock-model")
	assert.Contains(t, result.ModelInfo, "vader-lexicon")

	// joy: 0.7*0.9 (model) + 0.3*0.8 (lexicon projection)
	assert.InDelta(t, 0.87, result.Emotions.Joy, 1e-9)
	// trust: model at floor 0.1, lexicon 0.8*0.8
	assert.InDelta(t, 0.7*0.1+0.3*0.64, result.Emotions.Trust, 1e-9)
	// confidence: 0.7*maxLabel + 0.3*min(1, |compound|+0.3)
	assert.InDelta(t, 0.7*0.9+0.3*1.0, result.Confidence, 1e-9)
}

func TestClassifyLexiconConfidenceCapped(t *testing.T) {
	model := &mockModel{scores: []domain.LabelScore{{Label: "sadness", Score: 0.6}}}
	lex := &mockLexicon{scores: domain.PolarityScores{Compound: -0.4}}
	c := NewClassifier(model, lex, DefaultConfig())

	result := c.Classify(context.Background(), "meh")

	// lexicon share is min(1, 0.4+0.3) = 0.7
	assert.InDelta(t, 0.7*0.6+0.3*0.7, result.Confidence, 1e-9)
}

func TestClassifyNeverFails(t *testing.T) {
	inputs := map[string]string{
		"empty":        "",
		"whitespace":   "   \n\t  ",
		"emoji only":   "🔥🔥🔥 😱",
		"mixed script": "good день 素晴らしい",
		"huge":         strings.Repeat("angry angry angry ", 1000),
	}

	c := NewClassifier(nil, nil, DefaultConfig())
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			result := c.Classify(context.Background(), input)

			assert.NotEmpty(t, result.Source)
			for _, e := range domain.AllEmotions {
				score := result.Emotions.Score(e)
				assert.GreaterOrEqual(t, score, 0.0)
				assert.LessOrEqual(t, score, 1.0)
			}
		})
	}
}

func TestFallbackReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"breaker open", gobreaker.ErrOpenState, "breaker_open"},
		{"breaker half open", gobreaker.ErrTooManyRequests, "breaker_open"},
		{"deadline", context.DeadlineExceeded, "ctx_expired"},
		{"canceled", context.Canceled, "ctx_expired"},
		{"not warm", domain.ErrModelUnavailable, "not_warm"},
		{"other", errors.New("boom"), "model_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fallbackReason(tt.err))
		})
	}
}
