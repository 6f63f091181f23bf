// Package metadata translates titles, ids, and scanned codes into
// descriptive fields via external lookup providers.
//
// The Resolver wraps the provider clients and degrades gracefully: a
// provider without a configured API key simply reports no results, leaving
// manual entry available. Network failures surface as absent results to the
// caller, never as a crash.
package metadata
