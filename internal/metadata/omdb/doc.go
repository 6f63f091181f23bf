// Package omdb provides a minimal client for the OMDb API: title search
// and id-based detail fetch. A "no match" answer from the provider is not
// an error; callers receive an empty result instead.
package omdb
