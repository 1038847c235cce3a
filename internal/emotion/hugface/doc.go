// Package hugface adapts a HuggingFace-style inference endpoint as the
// transformer ModelClassifier capability.
//
// The client wraps every request in a circuit breaker, coalesces concurrent
// identical texts via singleflight, and warms the model behind a one-time
// barrier. A failed warm-up marks the process degraded (fallback-only) without
// crashing or retrying mid-request.
package hugface
