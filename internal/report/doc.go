// Package report runs one inspection of an entry and assembles the Report
// consumed by the renderers.
//
// The Inspector performs every network round-trip up front (entry, the full
// flavor list, conversion profile, enabled params and their targets) through
// a Fetcher, then hands immutable data to the classification, profile
// analysis, ladder and quality stages in that order. Fatal fetch failures are
// returned with their services marker intact; metadata that only enriches the
// output (flavor params targets, download URLs) degrades to warnings.
package report
