package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/virallens/emotionarc/internal/domain"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	// Parse flags to check for -short
	flag.Parse()

	// Skip container setup if running in short mode
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to terminate postgres container: %v\n", err)
		}
	}()

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get connection string: %v\n", err)
		os.Exit(1)
	}

	testPool, err = Connect(ctx, connStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to test database: %v\n", err)
		os.Exit(1)
	}
	defer testPool.Close()

	if err := RunMigrations(ctx, testPool); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func setupRepo(t *testing.T) *TrajectoryRepo {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	_, err := testPool.Exec(ctx, "TRUNCATE trajectories CASCADE")
	require.NoError(t, err)

	return NewTrajectoryRepo(testPool)
}

func sampleTrajectory() *domain.Trajectory {
	joyful := domain.EmotionResult{
		Emotions:   domain.EmotionVector{Joy: 0.8, Sadness: 0.05},
		Confidence: 0.7,
		Source:     domain.SourceFallback,
		ModelInfo:  "keyword-fallback",
	}
	neutral := domain.EmotionResult{
		Emotions:   domain.EmotionVector{Joy: 0.1, Sadness: 0.1},
		Confidence: 0.7,
		Source:     domain.SourceFallback,
		ModelInfo:  "keyword-fallback",
	}

	return &domain.Trajectory{
		ID:      uuid.New(),
		ArcType: domain.ArcRising,
		Segments: []domain.Segment{
			{Index: 0, Text: "meh start.", WordCount: 2, Result: neutral, Dominant: domain.Joy},
			{Index: 1, Text: "great finish!", WordCount: 2, Result: joyful, Dominant: domain.Joy, IsPeak: false},
		},
		Variance:      0.33,
		PeakIndices:   []int{},
		ValleyIndices: []int{},
		Transitions: []domain.Transition{
			{FromIndex: 0, ToIndex: 1, From: domain.Joy, To: domain.Joy, Strength: 0.7},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestSaveAndGetByID(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	want := sampleTrajectory()
	require.NoError(t, repo.Save(ctx, "persona-1", want))

	got, err := repo.GetByID(ctx, want.ID)
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.ArcType, got.ArcType)
	assert.Equal(t, want.Variance, got.Variance)
	assert.Equal(t, want.CreatedAt, got.CreatedAt.UTC())

	require.Len(t, got.Segments, 2)
	assert.Equal(t, want.Segments[0].Text, got.Segments[0].Text)
	assert.Equal(t, want.Segments[1].Result.Emotions, got.Segments[1].Result.Emotions)
	assert.Equal(t, domain.SourceFallback, got.Segments[1].Result.Source)

	require.Len(t, got.Transitions, 1)
	assert.Equal(t, want.Transitions[0], got.Transitions[0])
}

func TestGetByIDNotFound(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrAnalysisNotFound)
}

func TestSaveEmptyTrajectory(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	tr := &domain.Trajectory{
		ID:            uuid.New(),
		ArcType:       domain.ArcSteady,
		PeakIndices:   []int{},
		ValleyIndices: []int{},
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Save(ctx, "", tr))

	got, err := repo.GetByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Segments)
	assert.Empty(t, got.Transitions)
}

func TestSaveDuplicateIDFails(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	tr := sampleTrajectory()
	require.NoError(t, repo.Save(ctx, "", tr))
	assert.Error(t, repo.Save(ctx, "", tr))
}

func TestSegmentsOrderedByIndex(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	tr := sampleTrajectory()
	// Reverse the slice; the read path must order by index regardless
	tr.Segments[0], tr.Segments[1] = tr.Segments[1], tr.Segments[0]
	require.NoError(t, repo.Save(ctx, "", tr))

	got, err := repo.GetByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Segments[0].Index)
	assert.Equal(t, 1, got.Segments[1].Index)
}
