package emotion

import (
	"strings"

	"github.com/virallens/emotionarc/internal/domain"
)

// fallbackKeywords maps each emotion to its disjoint keyword set. Matching is
// case-insensitive substring matching, same as the trigger heuristics this
// replaced. The sets must stay disjoint so the fallback is unambiguous.
var fallbackKeywords = map[domain.Emotion][]string{
	domain.Joy:          {"happy", "joy", "excited", "amazing", "awesome", "wonderful", "great", "love", "good", "promising", "incredible", "delighted", "fantastic"},
	domain.Anger:        {"angry", "furious", "rage", "hate", "outraged", "annoyed", "infuriating"},
	domain.Fear:         {"afraid", "scared", "terrified", "worried", "anxious", "panic", "nervous", "dread"},
	domain.Sadness:      {"sad", "depressed", "miserable", "crying", "heartbroken", "grief", "terrible", "disappointing", "awful"},
	domain.Surprise:     {"surprised", "shocked", "unexpected", "sudden", "wow", "unbelievable", "astonish"},
	domain.Disgust:      {"disgusting", "gross", "nasty", "revolting", "repulsive", "vile"},
	domain.Trust:        {"trust", "reliable", "honest", "dependable", "faithful", "loyal"},
	domain.Anticipation: {"eager", "waiting", "upcoming", "soon", "expecting", "looking forward", "anticipat"},
}

// antonyms pairs emotions that suppress each other in the fallback.
var antonyms = map[domain.Emotion]domain.Emotion{
	domain.Joy:     domain.Sadness,
	domain.Sadness: domain.Joy,
	domain.Anger:   domain.Trust,
	domain.Trust:   domain.Anger,
}

// fallback is the deterministic circuit-breaker path: pure keyword matching,
// no external dependency, always available. The first matched emotion (in
// AllEmotions order) scores FallbackPrimary, further matches
// FallbackSecondary; a match suppresses its antonym unless the antonym also
// matched. Confidence is fixed.
func (c *Classifier) fallback(text string) domain.EmotionResult {
	lower := strings.ToLower(text)

	var vec domain.EmotionVector
	for _, e := range domain.AllEmotions {
		vec.SetScore(e, c.cfg.ScoreFloor)
	}

	matched := make(map[domain.Emotion]bool, 2)
	primaryAssigned := false
	for _, e := range domain.AllEmotions {
		for _, kw := range fallbackKeywords[e] {
			if strings.Contains(lower, kw) {
				matched[e] = true
				if primaryAssigned {
					vec.SetScore(e, c.cfg.FallbackSecondary)
				} else {
					vec.SetScore(e, c.cfg.FallbackPrimary)
					primaryAssigned = true
				}
				break
			}
		}
	}

	for e := range matched {
		if a, ok := antonyms[e]; ok && !matched[a] {
			vec.SetScore(a, c.cfg.FallbackSuppressed)
		}
	}

	return domain.EmotionResult{
		Emotions:   vec.Clamped(),
		Confidence: c.cfg.FallbackConfidence,
		Source:     domain.SourceFallback,
		ModelInfo:  "keyword-fallback",
	}
}
