package emotion

import (
	"math"

	"github.com/virallens/emotionarc/internal/domain"
)

// Companion scales for the polarity-to-emotion projection. The compound sign
// picks the emotion group; these fixed factors shape the group internally.
const (
	polarityTrustScale        = 0.8
	polarityAnticipationScale = 0.6
	polarityAngerScale        = 0.8
	polarityFearScale         = 0.6
	polarityDisgustScale      = 0.5
	polaritySurpriseScale     = 0.5
	polarityMildScale         = 0.5
)

// vectorFromPolarity maps lexicon compound/pos/neu/neg output onto the eight
// emotions. A strong positive compound elevates joy/trust/anticipation, a
// strong negative one sadness/anger/fear/disgust, and any large |compound|
// elevates surprise. Everything else stays at the score floor.
func vectorFromPolarity(p domain.PolarityScores, cfg Config) domain.EmotionVector {
	var vec domain.EmotionVector
	for _, e := range domain.AllEmotions {
		vec.SetScore(e, cfg.ScoreFloor)
	}

	magnitude := math.Abs(p.Compound)

	switch {
	case p.Compound >= cfg.StrongCompound:
		vec.Joy = magnitude
		vec.Trust = polarityTrustScale * magnitude
		vec.Anticipation = polarityAnticipationScale * magnitude
	case p.Compound <= -cfg.StrongCompound:
		vec.Sadness = magnitude
		vec.Anger = polarityAngerScale * magnitude
		vec.Fear = polarityFearScale * magnitude
		vec.Disgust = polarityDisgustScale * magnitude
	case p.Compound > 0:
		vec.Joy = math.Max(cfg.ScoreFloor, polarityMildScale*magnitude)
	case p.Compound < 0:
		vec.Sadness = math.Max(cfg.ScoreFloor, polarityMildScale*magnitude)
	}

	if s := polaritySurpriseScale * magnitude; s > vec.Surprise {
		vec.Surprise = s
	}

	return vec.Clamped()
}
