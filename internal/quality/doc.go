// Package quality holds rule-of-thumb checks for individual ladder rungs:
// expected bitrate per resolution and codec, bits per pixel, macroblock
// alignment and aspect sanity.
//
// The tables are coarse. They flag rungs worth a second look rather than
// encodes that are wrong.
package quality
