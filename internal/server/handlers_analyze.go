package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/virallens/emotionarc/internal/domain"
	apperrors "github.com/virallens/emotionarc/internal/errors"
)

// maxTextBytes bounds a single analyze request. The model adapter truncates
// further for inference; this cap just keeps request bodies sane.
const maxTextBytes = 64 * 1024

type analyzeEmotionRequest struct {
	Text string `json:"text"`
}

type segmentInput struct {
	Text string `json:"text"`
}

type analyzeTrajectoryRequest struct {
	PersonaID string         `json:"persona_id"`
	Text      string         `json:"text"`
	Segments  []segmentInput `json:"segments"`
}

type ensembleInfo struct {
	BertWeight  float64 `json:"bert_weight"`
	VaderWeight float64 `json:"vader_weight"`
}

type analyzeEmotionResponse struct {
	Emotions     domain.EmotionVector `json:"emotions"`
	Confidence   float64              `json:"confidence"`
	Source       domain.ResultSource  `json:"source"`
	ModelInfo    string               `json:"model_info"`
	EnsembleInfo ensembleInfo         `json:"ensemble_info"`
}

type trajectoryResponse struct {
	AnalysisID         uuid.UUID              `json:"analysis_id"`
	ArcType            domain.ArcType         `json:"arc_type"`
	EmotionProgression []domain.EmotionVector `json:"emotion_progression"`
	PeakSegments       []int                  `json:"peak_segments"`
	ValleySegments     []int                  `json:"valley_segments"`
	EmotionalVariance  float64                `json:"emotional_variance"`
	Transitions        []domain.Transition    `json:"transitions"`
	Segments           []domain.Segment       `json:"segments"`
	CreatedAt          time.Time              `json:"created_at"`
}

func newTrajectoryResponse(t *domain.Trajectory) trajectoryResponse {
	return trajectoryResponse{
		AnalysisID:         t.ID,
		ArcType:            t.ArcType,
		EmotionProgression: t.Progression(),
		PeakSegments:       t.PeakIndices,
		ValleySegments:     t.ValleyIndices,
		EmotionalVariance:  t.Variance,
		Transitions:        t.Transitions,
		Segments:           t.Segments,
		CreatedAt:          t.CreatedAt,
	}
}

func (s *Server) handleAnalyzeEmotion(c echo.Context) error {
	var req analyzeEmotionRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if len(req.Text) > maxTextBytes {
		return apperrors.ValidationError("text too large").WithField("max_bytes", maxTextBytes)
	}

	result := s.app.AnalyzeEmotion(c.Request().Context(), req.Text)

	resp := analyzeEmotionResponse{
		Emotions:   result.Emotions,
		Confidence: result.Confidence,
		Source:     result.Source,
		ModelInfo:  result.ModelInfo,
		EnsembleInfo: ensembleInfo{
			BertWeight:  s.config.EnsembleModelWeight,
			VaderWeight: s.config.EnsembleLexiconWeight,
		},
	}
	if err := c.JSON(200, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleAnalyzeTrajectory(c echo.Context) error {
	var req analyzeTrajectoryRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Text == "" && len(req.Segments) == 0 {
		return apperrors.ValidationError("text or segments is required")
	}
	if len(req.Text) > maxTextBytes {
		return apperrors.ValidationError("text too large").WithField("max_bytes", maxTextBytes)
	}

	segments := make([]string, 0, len(req.Segments))
	for i, segment := range req.Segments {
		if len(segment.Text) > maxTextBytes {
			return apperrors.ValidationError("segment too large").
				WithField("segment_index", i).
				WithField("max_bytes", maxTextBytes)
		}
		segments = append(segments, segment.Text)
	}

	trajectory, err := s.app.AnalyzeTrajectory(c.Request().Context(), req.PersonaID, req.Text, segments)
	if err != nil {
		return apperrors.InternalError("failed to analyze trajectory", err)
	}

	if err := c.JSON(200, newTrajectoryResponse(trajectory)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetTrajectory(c echo.Context) error {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return apperrors.ValidationError("invalid analysis ID").WithField("id", idStr)
	}

	trajectory, err := s.app.GetTrajectory(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAnalysisNotFound) {
			return apperrors.NotFoundError("analysis not found").WithField("id", id.String())
		}
		return apperrors.InternalError("failed to load analysis", err).WithField("id", id.String())
	}

	if err := c.JSON(200, newTrajectoryResponse(trajectory)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
