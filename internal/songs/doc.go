// Package songs turns raw video description text into a clean list of song
// titles.
//
// Extraction picks exactly one of three strategies per description:
//   - Identifier: the description names a song-list section ("song list",
//     "sound demo", ...); the lines after it up to the first blank or
//     hyphen line are candidates.
//   - DelimiterSplit: hyphen lines cut the description into exactly six
//     blocks; the third block holds the songs.
//   - RegexList: every "Artist - Title" shaped line is a candidate.
//
// Candidates from a whole batch are then trimmed, stripped of an inline
// timestamp run, and filtered through Keep, which rejects noise and
// duplicates while preserving first-seen order across the batch.
//
// Everything here is pure in-memory string work. The literal tables live in
// an immutable Tables value created once and shared by reference.
package songs
