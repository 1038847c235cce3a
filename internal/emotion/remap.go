package emotion

import (
	"strings"

	"github.com/virallens/emotionarc/internal/domain"
)

// remapModelScores projects raw model label/score pairs onto the canonical
// eight emotions. Shared labels pass through, "love" splits onto joy and
// trust, unknown labels (e.g. "neutral") are ignored, and every unassigned
// emotion receives the score floor so no key is ever 0.
//
// The second return value is the maximum raw label score, the model's share
// of the ensemble confidence.
func remapModelScores(scores []domain.LabelScore, cfg Config) (domain.EmotionVector, float64) {
	var vec domain.EmotionVector
	for _, e := range domain.AllEmotions {
		vec.SetScore(e, cfg.ScoreFloor)
	}

	maxScore := 0.0
	for _, ls := range scores {
		if ls.Score > maxScore {
			maxScore = ls.Score
		}

		switch label := strings.ToLower(strings.TrimSpace(ls.Label)); label {
		case "joy", "anger", "fear", "sadness", "surprise", "disgust", "trust", "anticipation":
			vec.SetScore(domain.Emotion(label), ls.Score)
		case "love":
			// Composite label: keep the larger of a direct score and the split
			// share so love never lowers an already strong joy/trust signal.
			if s := cfg.LoveJoyShare * ls.Score; s > vec.Joy {
				vec.Joy = s
			}
			if s := cfg.LoveTrustShare * ls.Score; s > vec.Trust {
				vec.Trust = s
			}
		}
	}

	return vec.Clamped(), clamp01(maxScore)
}
