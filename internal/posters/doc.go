// Package posters maintains a content-addressed local cache of cover
// images.
//
// Files are named by a fixed-length hex digest of the source URL, so a
// cached poster is never fetched twice and concurrent duplicate downloads
// at worst rewrite identical bytes. Images wider than the configured target
// are downscaled and re-encoded as moderately compressed JPEG to bound
// on-disk size. Every failure on the network path degrades to "no poster"
// rather than an error.
package posters
