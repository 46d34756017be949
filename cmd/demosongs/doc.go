// Command demosongs harvests song titles from the descriptions of keyboard
// "[SOUND DEMO]" videos and writes them to a plain text file.
//
// Subcommands:
//
//	extract   fetch descriptions (or read the cache) and write the songs file
//	parse     run the extractor on one local description
//	stats     report strategy and filter counts without writing
//	dump      write every description into good/bad buckets for inspection
//	cache     inspect or clear the description cache
//	config    create or validate the configuration file
package main
