// Package profile resolves the opaque per-profile identity and its storage
// layout.
//
// Each profile owns an isolated database and poster cache under
// data_dir/users/<id>/. The identifier is minted once as a random UUID and
// remembered in a state file; the rest of the system never interprets it.
// A file lock guards each profile directory so two shelf processes cannot
// write the same library concurrently.
package profile
