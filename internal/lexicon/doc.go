// Package lexicon implements a compact VADER-style polarity scorer.
//
// Scores come from an embedded valence lexicon with negation and booster
// handling; output follows the VADER convention (compound in [-1,1], pos/neu/neg
// proportions). Fully deterministic and dependency-free, safe for concurrent use.
package lexicon
