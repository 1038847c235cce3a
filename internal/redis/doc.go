// Package redis implements the Redis-backed analysis cache.
//
// Repeated classification of identical content short-circuits through cached
// EmotionResults keyed by content hash. Cache errors degrade to pass-through,
// never to request failures.
package redis
