package domain

import "context"

// Emotion is one of the eight canonical emotion labels.
type Emotion string

const (
	Joy          Emotion = "joy"
	Anger        Emotion = "anger"
	Fear         Emotion = "fear"
	Sadness      Emotion = "sadness"
	Surprise     Emotion = "surprise"
	Disgust      Emotion = "disgust"
	Trust        Emotion = "trust"
	Anticipation Emotion = "anticipation"
)

// AllEmotions lists the canonical labels in stable order. Iteration over
// emotion scores must use this slice so results are deterministic.
var AllEmotions = []Emotion{Joy, Anger, Fear, Sadness, Surprise, Disgust, Trust, Anticipation}

// EmotionVector holds a score in [0,1] for each of the eight canonical
// emotions. It is a fixed-size record rather than a map so the eight keys are
// exhaustive at compile time. Scores are not required to sum to 1.
type EmotionVector struct {
	Joy          float64 `json:"joy"`
	Anger        float64 `json:"anger"`
	Fear         float64 `json:"fear"`
	Sadness      float64 `json:"sadness"`
	Surprise     float64 `json:"surprise"`
	Disgust      float64 `json:"disgust"`
	Trust        float64 `json:"trust"`
	Anticipation float64 `json:"anticipation"`
}

// Score returns the value for the given emotion. Unknown labels return 0.
func (v EmotionVector) Score(e Emotion) float64 {
	switch e {
	case Joy:
		return v.Joy
	case Anger:
		return v.Anger
	case Fear:
		return v.Fear
	case Sadness:
		return v.Sadness
	case Surprise:
		return v.Surprise
	case Disgust:
		return v.Disgust
	case Trust:
		return v.Trust
	case Anticipation:
		return v.Anticipation
	}
	return 0
}

// SetScore sets the value for the given emotion. Unknown labels are ignored.
func (v *EmotionVector) SetScore(e Emotion, score float64) {
	switch e {
	case Joy:
		v.Joy = score
	case Anger:
		v.Anger = score
	case Fear:
		v.Fear = score
	case Sadness:
		v.Sadness = score
	case Surprise:
		v.Surprise = score
	case Disgust:
		v.Disgust = score
	case Trust:
		v.Trust = score
	case Anticipation:
		v.Anticipation = score
	}
}

// Dominant returns the emotion with the maximum score. Ties resolve to the
// earlier label in AllEmotions order, so the result is deterministic.
func (v EmotionVector) Dominant() Emotion {
	best := AllEmotions[0]
	bestScore := v.Score(best)
	for _, e := range AllEmotions[1:] {
		if s := v.Score(e); s > bestScore {
			best, bestScore = e, s
		}
	}
	return best
}

// Positivity is the scalar positivity signal (joy minus sadness) used for
// trend, peak and valley computation.
func (v EmotionVector) Positivity() float64 {
	return v.Joy - v.Sadness
}

// Clamped returns a copy with every score clamped to [0,1].
func (v EmotionVector) Clamped() EmotionVector {
	out := v
	for _, e := range AllEmotions {
		out.SetScore(e, clamp01(out.Score(e)))
	}
	return out
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

// ResultSource identifies which classification path produced an EmotionResult.
type ResultSource string

const (
	// SourceEnsemble means the transformer model and the lexicon scorer were
	// combined via weighted average.
	SourceEnsemble ResultSource = "ensemble"
	// SourceModel means only the transformer model contributed.
	SourceModel ResultSource = "model"
	// SourceFallback means the deterministic keyword fallback was used.
	SourceFallback ResultSource = "fallback"
)

// EmotionResult is the outcome of classifying one text segment. Created fresh
// per call and never mutated afterwards.
type EmotionResult struct {
	Emotions   EmotionVector `json:"emotions"`
	Confidence float64       `json:"confidence"`
	Source     ResultSource  `json:"source"`
	ModelInfo  string        `json:"model_info"`
}

// LabelScore is one raw label/score pair emitted by a transformer model.
// Labels are model-specific ("love", "neutral", ...) and remapped onto the
// canonical eight keys by the classifier.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// PolarityScores is the output of a lexicon polarity scorer in VADER
// convention: compound in [-1,1], pos/neu/neg in [0,1].
type PolarityScores struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"pos"`
	Neutral  float64 `json:"neu"`
	Negative float64 `json:"neg"`
}

// ModelClassifier is the injected transformer-model capability. Implementations
// must be safe for concurrent use; failures are reported through the error and
// handled by switching to the keyword fallback.
type ModelClassifier interface {
	Scores(ctx context.Context, text string) ([]LabelScore, error)
	Name() string
}

// PolarityScorer is the injected lexicon capability. Implementations must be
// deterministic and safe for concurrent use.
type PolarityScorer interface {
	Polarity(text string) PolarityScores
}
