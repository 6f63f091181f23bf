// Package backup serializes one profile's database and poster cache into a
// portable zip archive and restores from one.
//
// The archive layout is the contract for both directions: the database at
// the root entry name and a posters/ subtree mirroring the cache
// directory. Import refuses archives without the database entry and leaves
// the live state untouched in that case.
package backup
