// Package emotion implements the emotion classification ensemble.
//
// The Classifier combines a transformer emotion model with a lexicon polarity
// scorer via weighted average, remapping model labels onto the eight canonical
// emotions. Any model failure switches the call to a deterministic keyword
// fallback, so Classify never fails. No mutable state (model handles are
// read-only after warm-up).
package emotion
