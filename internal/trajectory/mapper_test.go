package trajectory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virallens/emotionarc/internal/domain"
	"github.com/virallens/emotionarc/internal/emotion"
)

// stubClassifier returns canned vectors keyed by text.
type stubClassifier struct {
	vectors map[string]domain.EmotionVector
}

func (s *stubClassifier) Classify(_ context.Context, text string) domain.EmotionResult {
	return domain.EmotionResult{
		Emotions:   s.vectors[text],
		Confidence: 0.9,
		Source:     domain.SourceModel,
	}
}

func TestMapBuildsSegments(t *testing.T) {
	classifier := &stubClassifier{vectors: map[string]domain.EmotionVector{
		"happy start": {Joy: 0.9},
		"sad middle":  {Sadness: 0.8},
		"happy end":   {Joy: 0.9},
	}}
	clock := clockwork.NewFakeClock()
	m := NewMapper(classifier, DefaultArcConfig(), 2, clock)

	tr := m.Map(context.Background(), []string{"happy start", "sad middle", "happy end"})

	require.Len(t, tr.Segments, 3)
	assert.NotEqual(t, uuid.Nil, tr.ID)
	assert.Equal(t, clock.Now().UTC(), tr.CreatedAt)

	first := tr.Segments[0]
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "happy start", first.Text)
	assert.Equal(t, 2, first.WordCount)
	assert.Equal(t, domain.Joy, first.Dominant)

	assert.Equal(t, domain.Sadness, tr.Segments[1].Dominant)
	assert.True(t, tr.Segments[1].IsValley)
	assert.False(t, tr.Segments[1].IsPeak)

	// N segments always give N-1 transitions
	assert.Len(t, tr.Transitions, 2)
}

func TestMapEmptyInput(t *testing.T) {
	m := NewMapper(&stubClassifier{}, DefaultArcConfig(), 2, clockwork.NewFakeClock())

	tr := m.Map(context.Background(), nil)

	assert.Empty(t, tr.Segments)
	assert.Empty(t, tr.Transitions)
	assert.Equal(t, domain.ArcSteady, tr.ArcType)
}

func TestMapPreservesOrderUnderConcurrency(t *testing.T) {
	texts := make([]string, 50)
	vectors := make(map[string]domain.EmotionVector, 50)
	for i := range texts {
		texts[i] = string(rune('a' + i%26))
		vectors[texts[i]] = domain.EmotionVector{Joy: float64(i%26) / 26}
	}

	m := NewMapper(&stubClassifier{vectors: vectors}, DefaultArcConfig(), 4, clockwork.NewFakeClock())
	tr := m.Map(context.Background(), texts)

	require.Len(t, tr.Segments, 50)
	for i, s := range tr.Segments {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, texts[i], s.Text)
		assert.Equal(t, vectors[texts[i]], s.Result.Emotions)
	}
}

// The two reference posts exercise the full fallback pipeline end to end.

func TestMapTextRisingPost(t *testing.T) {
	classifier := emotion.NewClassifier(nil, nil, emotion.DefaultConfig())
	m := NewMapper(classifier, DefaultArcConfig(), 4, clockwork.NewFakeClock())

	text := "Not sure about this launch.\nEarly numbers look promising.\nThis is incredible!"
	tr := m.MapText(context.Background(), text)

	require.Len(t, tr.Segments, 3)
	assert.Equal(t, domain.ArcRising, tr.ArcType)
}

func TestMapTextRollerCoasterPost(t *testing.T) {
	classifier := emotion.NewClassifier(nil, nil, emotion.DefaultConfig())
	m := NewMapper(classifier, DefaultArcConfig(), 4, clockwork.NewFakeClock())

	text := "I love this product!\nThen I found a bug.\nFixed it, works great!\nAnother bug appeared.\nAll good now."
	tr := m.MapText(context.Background(), text)

	require.Len(t, tr.Segments, 5)
	assert.Equal(t, domain.ArcRollerCoaster, tr.ArcType)
	assert.Equal(t, []int{2}, tr.PeakIndices)
	assert.Equal(t, []int{1, 3}, tr.ValleyIndices)
	assert.True(t, tr.Segments[2].IsPeak)
	assert.True(t, tr.Segments[1].IsValley)
	assert.True(t, tr.Segments[3].IsValley)
	assert.Len(t, tr.Transitions, 4)
}
