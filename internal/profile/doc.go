// Package profile cross-references a conversion profile's enabled flavor
// params against the classified flavors of an entry.
//
// Analyze reports enabled params that never produced a flavor, READY flavors
// the profile does not govern, rungs above the source bitrate or resolution,
// and groups of near-duplicate bitrates. Checks that need a source flavor are
// marked not evaluable instead of returning an empty, indistinguishable set.
package profile
