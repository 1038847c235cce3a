package emotion

// Config holds the empirically tuned classification constants. Values carry
// over from production tuning; override via environment, not by editing code.
type Config struct {
	// ModelWeight and LexiconWeight blend the two ensemble sources and must
	// sum to 1.0.
	ModelWeight   float64
	LexiconWeight float64

	// LoveJoyShare and LoveTrustShare split the composite "love" model label
	// onto joy and trust.
	LoveJoyShare   float64
	LoveTrustShare float64

	// ScoreFloor is the minimum score any emotion receives; no key is ever 0.
	ScoreFloor float64

	// StrongCompound is the |compound| threshold above which the lexicon
	// signal elevates the full positive or negative emotion group.
	StrongCompound float64

	// FallbackPrimary scores the first keyword-matched emotion,
	// FallbackSecondary any further matches, FallbackSuppressed the antonym
	// of a matched emotion. FallbackConfidence is the fixed fallback
	// confidence.
	FallbackPrimary    float64
	FallbackSecondary  float64
	FallbackSuppressed float64
	FallbackConfidence float64
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		ModelWeight:        0.7,
		LexiconWeight:      0.3,
		LoveJoyShare:       0.6,
		LoveTrustShare:     0.4,
		ScoreFloor:         0.1,
		StrongCompound:     0.5,
		FallbackPrimary:    0.8,
		FallbackSecondary:  0.7,
		FallbackSuppressed: 0.05,
		FallbackConfidence: 0.7,
	}
}
