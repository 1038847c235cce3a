package domain

// Transition relates two adjacent segments: the dominant emotion moved from
// From to To with the given strength. For N segments an analysis always yields
// exactly max(0, N-1) transitions.
type Transition struct {
	FromIndex int     `json:"from_index"`
	ToIndex   int     `json:"to_index"`
	From      Emotion `json:"from_emotion"`
	To        Emotion `json:"to_emotion"`
	Strength  float64 `json:"strength"`
}

// TransitionPair is a from/to emotion pair with its occurrence count, used for
// frequency ranking.
type TransitionPair struct {
	From  Emotion `json:"from_emotion"`
	To    Emotion `json:"to_emotion"`
	Count int     `json:"count"`
}

// TransitionSummary aggregates the transitions of one analysis.
type TransitionSummary struct {
	Transitions  []Transition     `json:"transitions"`
	RankedPairs  []TransitionPair `json:"ranked_pairs"`
	MeanStrength float64          `json:"mean_strength"`
}
