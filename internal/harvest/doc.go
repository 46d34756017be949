// Package harvest runs one extraction pass end to end.
//
// A Runner holds the data directory lock for the duration of a run, collects
// the description batch (from YouTube, refreshing the cache, or from the cache
// alone when offline), runs the song extractor over it and writes the songs
// file. The Summary it returns is what the CLI renders.
package harvest
