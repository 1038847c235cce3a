// Package trajectory implements emotional arc analysis over ordered segments.
//
// The Mapper segments input, classifies every segment concurrently, and runs
// arc classification (trend, variance, peaks/valleys) and transition analysis
// over the resulting vector sequence. All computation is per-call and
// stateless.
package trajectory
