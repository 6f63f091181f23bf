// Package enrich composes the metadata resolver, poster cache, and catalog
// store to add one item from a search result or a scanned code.
//
// Lookup precedence for scans: a film-database record reached through the
// product's external film id wins; the product record's bare title and
// year are the fallback; a payload naming neither is surfaced to the
// caller as unresolved rather than failing.
package enrich
