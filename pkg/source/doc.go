// Package source loads work items from files and item stores.
//
// Every source yields items in a stable order, which the row layout relies on
// for deterministic output. Records that cannot be fully understood are still
// loaded: unknown types become Features and unparseable dates become "no
// date" (see item.Record.Item).
//
// # Files
//
// [File] reads a snapshot by extension:
//
//	.json .jsonc   an array of records, or {"items": [...]}; comments allowed
//	.yaml .yml     a sequence of records, or a mapping with an items key
//	.toml          [[items]] tables
//	.csv           a header row naming record fields, one record per line
//
// # Stores
//
// [SQLite] keeps items in a local database file and is the target of
// `roadmap import`. [Mongo] reads items from a MongoDB collection.
// [Open] picks the right source for a reference string.
package source
