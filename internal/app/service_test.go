package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virallens/emotionarc/internal/domain"
)

// --- Mocks ---

type mockClassifier struct {
	mu    sync.Mutex
	calls int
}

func (m *mockClassifier) Classify(_ context.Context, _ string) domain.EmotionResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return domain.EmotionResult{
		Emotions:   domain.EmotionVector{Joy: 0.8},
		Confidence: 0.9,
		Source:     domain.SourceModel,
	}
}

func (m *mockClassifier) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockMapper struct {
	lastText     string
	lastSegments []string
	trajectory   *domain.Trajectory
}

func (m *mockMapper) MapText(_ context.Context, text string) *domain.Trajectory {
	m.lastText = text
	return m.trajectory
}

func (m *mockMapper) Map(_ context.Context, segments []string) *domain.Trajectory {
	m.lastSegments = segments
	return m.trajectory
}

type mockCache struct {
	entries map[string]*domain.EmotionResult
	getErr  error
	setErr  error
	sets    int
}

func (m *mockCache) GetResult(_ context.Context, key string) (*domain.EmotionResult, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	r, ok := m.entries[key]
	return r, ok, nil
}

func (m *mockCache) SetResult(_ context.Context, key string, result *domain.EmotionResult) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = result
	return nil
}

type mockRepo struct {
	saved     map[uuid.UUID]*domain.Trajectory
	personaID string
	saveErr   error
}

func (m *mockRepo) Save(_ context.Context, personaID string, t *domain.Trajectory) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.personaID = personaID
	m.saved[t.ID] = t
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Trajectory, error) {
	t, ok := m.saved[id]
	if !ok {
		return nil, domain.ErrAnalysisNotFound
	}
	return t, nil
}

func newMockRepo() *mockRepo {
	return &mockRepo{saved: make(map[uuid.UUID]*domain.Trajectory)}
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]*domain.EmotionResult)}
}

// --- Tests ---

func TestAnalyzeEmotionCachesResult(t *testing.T) {
	classifier := &mockClassifier{}
	cache := newMockCache()
	svc := NewService(classifier, &mockMapper{}, cache, newMockRepo())

	first := svc.AnalyzeEmotion(context.Background(), "great news")
	second := svc.AnalyzeEmotion(context.Background(), "great news")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, classifier.callCount())
}

func TestAnalyzeEmotionDistinctTextsDistinctKeys(t *testing.T) {
	classifier := &mockClassifier{}
	svc := NewService(classifier, &mockMapper{}, newMockCache(), newMockRepo())

	svc.AnalyzeEmotion(context.Background(), "one")
	svc.AnalyzeEmotion(context.Background(), "two")

	assert.Equal(t, 2, classifier.callCount())
}

func TestAnalyzeEmotionCacheErrorsDegradeGracefully(t *testing.T) {
	classifier := &mockClassifier{}
	cache := newMockCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc := NewService(classifier, &mockMapper{}, cache, newMockRepo())

	result := svc.AnalyzeEmotion(context.Background(), "still works")

	assert.Equal(t, 0.8, result.Emotions.Joy)
	assert.Equal(t, 1, classifier.callCount())
}

func TestAnalyzeEmotionNilCache(t *testing.T) {
	classifier := &mockClassifier{}
	svc := NewService(classifier, &mockMapper{}, nil, nil)

	result := svc.AnalyzeEmotion(context.Background(), "no cache configured")
	assert.Equal(t, domain.SourceModel, result.Source)
}

func TestAnalyzeTrajectoryPersists(t *testing.T) {
	want := &domain.Trajectory{ID: uuid.New(), ArcType: domain.ArcRising}
	mapper := &mockMapper{trajectory: want}
	repo := newMockRepo()
	svc := NewService(&mockClassifier{}, mapper, newMockCache(), repo)

	got, err := svc.AnalyzeTrajectory(context.Background(), "persona-1", "some text. more text.", nil)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, "some text. more text.", mapper.lastText)
	assert.Equal(t, "persona-1", repo.personaID)
	assert.Contains(t, repo.saved, want.ID)
}

func TestAnalyzeTrajectoryPreSplitSegments(t *testing.T) {
	want := &domain.Trajectory{ID: uuid.New()}
	mapper := &mockMapper{trajectory: want}
	svc := NewService(&mockClassifier{}, mapper, newMockCache(), newMockRepo())

	segments := []string{"first", "second"}
	_, err := svc.AnalyzeTrajectory(context.Background(), "", "ignored", segments)
	require.NoError(t, err)

	assert.Equal(t, segments, mapper.lastSegments)
	assert.Empty(t, mapper.lastText)
}

func TestAnalyzeTrajectorySaveFailure(t *testing.T) {
	repo := newMockRepo()
	repo.saveErr = errors.New("pg down")
	mapper := &mockMapper{trajectory: &domain.Trajectory{ID: uuid.New()}}
	svc := NewService(&mockClassifier{}, mapper, newMockCache(), repo)

	_, err := svc.AnalyzeTrajectory(context.Background(), "", "text", nil)
	assert.Error(t, err)
}

func TestGetTrajectory(t *testing.T) {
	want := &domain.Trajectory{ID: uuid.New()}
	repo := newMockRepo()
	repo.saved[want.ID] = want
	svc := NewService(&mockClassifier{}, &mockMapper{}, newMockCache(), repo)

	got, err := svc.GetTrajectory(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.GetTrajectory(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrAnalysisNotFound)
}

func TestContentKeyStable(t *testing.T) {
	assert.Equal(t, contentKey("same text"), contentKey("same text"))
	assert.NotEqual(t, contentKey("one"), contentKey("two"))
	assert.Len(t, contentKey(""), 64)
}
