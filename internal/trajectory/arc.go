package trajectory

import "github.com/virallens/emotionarc/internal/domain"

// ArcConfig holds the empirically tuned arc-classification thresholds.
type ArcConfig struct {
	// RollerCoasterVariance is the minimum scaled variance for a
	// roller_coaster arc.
	RollerCoasterVariance float64
	// TrendThreshold is the net positivity change beyond which an arc counts
	// as rising (or falling, mirrored).
	TrendThreshold float64
	// SteadyVariance is the scaled variance below which an arc without a
	// strong trend counts as steady.
	SteadyVariance float64
	// VarianceScale stretches averaged per-emotion variance onto [0,1].
	VarianceScale float64
	// ActiveEmotionFloor excludes emotions that never rise above the score
	// floor from the variance computation.
	ActiveEmotionFloor float64
}

// DefaultArcConfig returns the production tuning.
func DefaultArcConfig() ArcConfig {
	return ArcConfig{
		RollerCoasterVariance: 0.4,
		TrendThreshold:        0.3,
		SteadyVariance:        0.2,
		VarianceScale:         4,
		ActiveEmotionFloor:    0.1,
	}
}

// ArcResult is the outcome of classifying one vector sequence.
type ArcResult struct {
	ArcType       domain.ArcType
	Variance      float64
	PeakIndices   []int
	ValleyIndices []int
}

// ClassifyArc computes the positivity trend, emotional variance, peak/valley
// markers and the arc label for an ordered vector sequence.
func ClassifyArc(vectors []domain.EmotionVector, cfg ArcConfig) ArcResult {
	positivity := make([]float64, len(vectors))
	for i, v := range vectors {
		positivity[i] = v.Positivity()
	}

	peaks, valleys := findExtrema(positivity)
	variance := emotionalVariance(vectors, cfg)

	return ArcResult{
		ArcType:       classify(positivity, variance, peaks, valleys, cfg),
		Variance:      variance,
		PeakIndices:   peaks,
		ValleyIndices: valleys,
	}
}

// findExtrema marks interior indices strictly greater (peak) or strictly less
// (valley) than both neighbors. Endpoints never qualify; sequences shorter
// than 3 yield none.
func findExtrema(positivity []float64) (peaks, valleys []int) {
	peaks, valleys = []int{}, []int{}
	for i := 1; i < len(positivity)-1; i++ {
		switch {
		case positivity[i] > positivity[i-1] && positivity[i] > positivity[i+1]:
			peaks = append(peaks, i)
		case positivity[i] < positivity[i-1] && positivity[i] < positivity[i+1]:
			valleys = append(valleys, i)
		}
	}
	return peaks, valleys
}

// emotionalVariance averages the population variance of every emotion that is
// active somewhere in the sequence (any value above the floor), scaled and
// clamped onto [0,1]. No active emotions means 0.
func emotionalVariance(vectors []domain.EmotionVector, cfg ArcConfig) float64 {
	if len(vectors) == 0 {
		return 0
	}

	sum, qualifying := 0.0, 0
	for _, e := range domain.AllEmotions {
		values := make([]float64, len(vectors))
		active := false
		for i, v := range vectors {
			values[i] = v.Score(e)
			if values[i] > cfg.ActiveEmotionFloor {
				active = true
			}
		}
		if !active {
			continue
		}
		sum += populationVariance(values)
		qualifying++
	}

	if qualifying == 0 {
		return 0
	}

	scaled := sum / float64(qualifying) * cfg.VarianceScale
	if scaled > 1 {
		return 1
	}
	return scaled
}

func populationVariance(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return variance / float64(len(values))
}

// directionFlips counts sign changes between consecutive non-zero positivity
// differences.
func directionFlips(positivity []float64) int {
	flips := 0
	prevSign := 0
	for i := 1; i < len(positivity); i++ {
		d := positivity[i] - positivity[i-1]
		sign := 0
		if d > 0 {
			sign = 1
		} else if d < 0 {
			sign = -1
		}
		if sign == 0 {
			continue
		}
		if prevSign != 0 && sign != prevSign {
			flips++
		}
		prevSign = sign
	}
	return flips
}

// classify applies the arc rules in priority order: roller_coaster, then a
// strong trend, then low-variance steady, then the sign of the net change.
func classify(positivity []float64, variance float64, peaks, valleys []int, cfg ArcConfig) domain.ArcType {
	if len(positivity) < 2 {
		return domain.ArcSteady
	}

	net := positivity[len(positivity)-1] - positivity[0]

	if variance > cfg.RollerCoasterVariance && len(peaks) > 0 && len(valleys) > 0 && directionFlips(positivity) >= 2 {
		return domain.ArcRollerCoaster
	}
	if net > cfg.TrendThreshold {
		return domain.ArcRising
	}
	if net < -cfg.TrendThreshold {
		return domain.ArcFalling
	}
	if variance < cfg.SteadyVariance {
		return domain.ArcSteady
	}

	// No strong trend but restless variance: fall back to the net direction.
	switch {
	case net > 0:
		return domain.ArcRising
	case net < 0:
		return domain.ArcFalling
	default:
		return domain.ArcSteady
	}
}
