// Package output writes harvest results to disk: the songs file and the
// optional per-description debug dump.
package output
