// Package config loads, normalizes, and validates demosongs configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the YOUTUBE_API_KEY environment
// fallback. The Config type gathers the catalog source, output locations,
// description cache, and logging knobs in one place.
//
// The song-list literal tables are not configuration; they are compiled into
// the songs package.
package config
