// Package descstore caches the last fetched description batch in SQLite so
// extraction can be rerun offline.
//
// The cache holds exactly one batch. Save replaces it atomically and Load
// returns it in fetch order.
package descstore
