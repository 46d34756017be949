// Package catalog lists sound demo videos from the YouTube Data API.
//
// Client wraps the two endpoints the harvester needs (channel uploads
// playlist lookup and paged playlist items) with request pacing and a bounded
// timeout. ChannelSource walks the configured channels in order and keeps the
// videos whose title carries the sound demo marker. All text leaving this
// package is NFC-normalized with LF line endings.
package catalog
