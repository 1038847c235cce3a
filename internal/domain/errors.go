package domain

import "errors"

var (
	// ErrModelUnavailable means the transformer model could not load or
	// execute. The classifier recovers locally via the keyword fallback; this
	// sentinel only surfaces through provenance and health reporting.
	ErrModelUnavailable = errors.New("emotion model unavailable")

	// ErrAnalysisNotFound means a persisted trajectory lookup missed.
	ErrAnalysisNotFound = errors.New("analysis not found")
)
