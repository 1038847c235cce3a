package lexicon

import (
	"math"
	"strings"
	"unicode"

	"github.com/virallens/emotionarc/internal/domain"
)

const (
	// normalizationAlpha approximates the expected maximum valence sum; the
	// standard VADER constant.
	normalizationAlpha = 15.0
	// negationDamp flips and dampens valence after a negation token.
	negationDamp = -0.74
	// boosterStep is the valence increment contributed by an intensifier.
	boosterStep = 0.293
	// exclamationBoost is added per trailing '!' (capped at 3).
	exclamationBoost = 0.292
	// negationWindow is how many tokens back a negation still applies.
	negationWindow = 3
)

// Scorer scores text polarity against the embedded valence lexicon. The zero
// value is not usable; construct with NewScorer.
type Scorer struct {
	valence  map[string]float64
	negators map[string]struct{}
	boosters map[string]float64
}

// NewScorer returns a scorer backed by the embedded lexicon.
func NewScorer() *Scorer {
	return &Scorer{
		valence:  valenceLexicon,
		negators: negatorWords,
		boosters: boosterWords,
	}
}

// Polarity implements domain.PolarityScorer. It never fails; unscorable input
// yields a fully neutral result.
func (s *Scorer) Polarity(text string) domain.PolarityScores {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return domain.PolarityScores{Neutral: 1}
	}

	var valences []float64
	for i, tok := range tokens {
		v, ok := s.valence[tok]
		if !ok {
			valences = append(valences, 0)
			continue
		}

		// Boosters directly before the token amplify it; negators within the
		// window flip and dampen it.
		for j := i - 1; j >= 0 && j >= i-negationWindow; j-- {
			prev := tokens[j]
			if boost, ok := s.boosters[prev]; ok && j == i-1 {
				if v > 0 {
					v += boost
				} else {
					v -= boost
				}
			}
			if _, ok := s.negators[prev]; ok {
				v *= negationDamp
				break
			}
		}

		valences = append(valences, v)
	}

	sum := 0.0
	posSum, negSum, neuCount := 0.0, 0.0, 0
	for _, v := range valences {
		sum += v
		switch {
		case v > 0:
			posSum += v + 1
		case v < 0:
			negSum += math.Abs(v) + 1
		default:
			neuCount++
		}
	}

	if bangs := countTrailingBangs(text); bangs > 0 && sum != 0 {
		boost := float64(bangs) * exclamationBoost
		if sum > 0 {
			sum += boost
		} else {
			sum -= boost
		}
	}

	compound := sum / math.Sqrt(sum*sum+normalizationAlpha)

	total := posSum + negSum + float64(neuCount)
	scores := domain.PolarityScores{Compound: round4(compound)}
	if total > 0 {
		scores.Positive = round4(posSum / total)
		scores.Negative = round4(negSum / total)
		scores.Neutral = round4(float64(neuCount) / total)
	} else {
		scores.Neutral = 1
	}
	return scores
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func countTrailingBangs(text string) int {
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	n := 0
	for i := len(text) - 1; i >= 0 && text[i] == '!'; i-- {
		n++
	}
	if n > 3 {
		n = 3
	}
	return n
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
