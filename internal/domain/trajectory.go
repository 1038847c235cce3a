package domain

import (
	"time"

	"github.com/google/uuid"
)

// ArcType is the coarse classification of how positivity evolves across
// ordered segments.
type ArcType string

const (
	ArcRising        ArcType = "rising"
	ArcFalling       ArcType = "falling"
	ArcRollerCoaster ArcType = "roller_coaster"
	ArcSteady        ArcType = "steady"
)

// Segment is one ordered unit of input text with its classification outcome.
// IsPeak and IsValley are filled in by the arc classifier.
type Segment struct {
	Index     int           `json:"index"`
	Text      string        `json:"text"`
	WordCount int           `json:"word_count"`
	Result    EmotionResult `json:"result"`
	Dominant  Emotion       `json:"dominant_emotion"`
	IsPeak    bool          `json:"is_peak"`
	IsValley  bool          `json:"is_valley"`
}

// Trajectory owns the ordered segments of one analysis call plus the derived
// arc aggregates. Lifetime is the call; nothing here is shared or mutated
// after assembly.
type Trajectory struct {
	ID            uuid.UUID    `json:"id"`
	Segments      []Segment    `json:"segments"`
	ArcType       ArcType      `json:"arc_type"`
	Variance      float64      `json:"emotional_variance"`
	PeakIndices   []int        `json:"peak_segments"`
	ValleyIndices []int        `json:"valley_segments"`
	Transitions   []Transition `json:"transitions"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Progression returns the per-segment emotion vectors in order.
func (t *Trajectory) Progression() []EmotionVector {
	out := make([]EmotionVector, len(t.Segments))
	for i, s := range t.Segments {
		out[i] = s.Result.Emotions
	}
	return out
}
