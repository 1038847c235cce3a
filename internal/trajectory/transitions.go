package trajectory

import (
	"math"
	"sort"

	"github.com/virallens/emotionarc/internal/domain"
)

// AnalyzeTransitions computes the dominant-emotion transition between every
// adjacent vector pair. The result always holds exactly max(0, len-1)
// transitions, plus frequency-ranked pairs and the mean strength.
func AnalyzeTransitions(vectors []domain.EmotionVector) domain.TransitionSummary {
	transitions := make([]domain.Transition, 0, max(0, len(vectors)-1))
	counts := make(map[[2]domain.Emotion]int)
	totalStrength := 0.0

	for i := 0; i+1 < len(vectors); i++ {
		from := vectors[i].Dominant()
		to := vectors[i+1].Dominant()
		strength := math.Abs(vectors[i+1].Score(to) - vectors[i].Score(from))

		transitions = append(transitions, domain.Transition{
			FromIndex: i,
			ToIndex:   i + 1,
			From:      from,
			To:        to,
			Strength:  strength,
		})
		counts[[2]domain.Emotion{from, to}]++
		totalStrength += strength
	}

	ranked := make([]domain.TransitionPair, 0, len(counts))
	for pair, count := range counts {
		ranked = append(ranked, domain.TransitionPair{From: pair[0], To: pair[1], Count: count})
	}
	// Order by frequency, ties by label so output is deterministic.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		if ranked[i].From != ranked[j].From {
			return ranked[i].From < ranked[j].From
		}
		return ranked[i].To < ranked[j].To
	})

	mean := 0.0
	if len(transitions) > 0 {
		mean = totalStrength / float64(len(transitions))
	}

	return domain.TransitionSummary{
		Transitions:  transitions,
		RankedPairs:  ranked,
		MeanStrength: mean,
	}
}
