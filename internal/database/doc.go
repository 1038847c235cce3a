// Package database implements PostgreSQL persistence for trajectory analyses.
//
// Provides the connection pool, tern-based embedded migrations (run under an
// advisory lock so concurrent instances don't race), and the trajectory
// repository.
package database
