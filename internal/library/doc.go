// Package library persists the media catalog in SQLite and is the only
// writer for items, lists, and list memberships.
//
// The Store manages the database connection, schema initialization, item
// CRUD, and ordered list membership. List order is defined by per-list
// position values; reordering swaps the position values of two neighboring
// rows and deletion never renumbers, so gaps can accumulate without
// affecting relative order.
//
// Schema changes bump the version in schema.go; the database refuses to
// open when the on-disk version differs.
package library
