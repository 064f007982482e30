// Package database provides SQLite-based storage for verification history.
//
// HistoryDB records every saved verification pass together with its
// per-case outcomes so earlier runs can be listed and shown again with the
// history command.
//
// SQLite (via modernc.org/sqlite) keeps the store in a single file without
// CGO. WAL mode lets the history command read while a run is being saved.
package database
