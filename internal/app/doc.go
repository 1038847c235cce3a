// Package app provides the application service layer.
//
// Orchestrates use cases: single-text emotion analysis with cache lookups,
// full trajectory analysis with persistence, and stored-analysis retrieval.
// Sits between HTTP handlers and domain components. Depends on domain
// interfaces, not concrete implementations.
package app
