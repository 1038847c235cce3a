// Package server implements the HTTP API on Echo.
//
// Routes: the analyze endpoints, stored-trajectory retrieval, health probes
// and Prometheus metrics. Handlers return structured errors which the errors
// middleware maps to HTTP responses. The analyze endpoints sit behind a
// per-client rate limiter.
package server
