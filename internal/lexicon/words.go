package lexicon

// valenceLexicon holds word valences on the VADER scale of roughly [-4, 4].
// A trimmed set tuned for social-post vocabulary; extend as misclassified
// samples surface.
var valenceLexicon = map[string]float64{
	// positive
	"amazing":     3.0,
	"awesome":     3.1,
	"best":        3.2,
	"better":      1.9,
	"brilliant":   2.8,
	"delighted":   2.9,
	"excellent":   3.1,
	"excited":     2.4,
	"exciting":    2.2,
	"fantastic":   2.6,
	"fixed":       1.2,
	"fun":         2.3,
	"glad":        2.0,
	"good":        1.9,
	"great":       3.1,
	"happy":       2.7,
	"incredible":  2.9,
	"joy":         2.8,
	"like":        1.5,
	"love":        3.2,
	"loved":       2.9,
	"nice":        1.8,
	"perfect":     2.7,
	"promising":   1.6,
	"thanks":      1.9,
	"win":         2.8,
	"wonderful":   2.7,
	"wow":         2.8,
	"yes":         1.7,
	// negative
	"angry":         -2.3,
	"annoying":      -1.8,
	"awful":         -2.0,
	"bad":           -2.5,
	"broken":        -1.9,
	"bug":           -1.4,
	"crash":         -2.1,
	"critical":      -1.3,
	"disappointing": -2.2,
	"disgusting":    -2.4,
	"fail":          -2.5,
	"failed":        -2.3,
	"fear":          -2.2,
	"hate":          -2.7,
	"horrible":      -2.5,
	"hurt":          -2.4,
	"lose":          -2.2,
	"lost":          -1.9,
	"mad":           -2.2,
	"miserable":     -2.8,
	"no":            -1.2,
	"pain":          -2.3,
	"problem":       -1.6,
	"sad":           -2.1,
	"scared":        -2.2,
	"terrible":      -2.1,
	"ugly":          -2.3,
	"worried":       -1.8,
	"worst":         -3.1,
	"wrong":         -2.1,
}

// negatorWords flip the valence of a following lexicon word.
var negatorWords = map[string]struct{}{
	"not":     {},
	"never":   {},
	"neither": {},
	"nor":     {},
	"cannot":  {},
	"can't":   {},
	"won't":   {},
	"don't":   {},
	"doesn't": {},
	"didn't":  {},
	"isn't":   {},
	"wasn't":  {},
	"without": {},
}

// boosterWords intensify the valence of the next lexicon word.
var boosterWords = map[string]float64{
	"absolutely": boosterStep,
	"completely": boosterStep,
	"extremely":  boosterStep,
	"incredibly": boosterStep,
	"really":     boosterStep,
	"so":         boosterStep,
	"totally":    boosterStep,
	"very":       boosterStep,
	"barely":     -boosterStep,
	"hardly":     -boosterStep,
	"kind":       -boosterStep,
	"slightly":   -boosterStep,
	"somewhat":   -boosterStep,
}
