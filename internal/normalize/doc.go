// Package normalize turns loosely typed API payload values into well-defined
// numbers and strings.
//
// Every numeric field read from a paginated record passes through here before
// any comparison or arithmetic. Conversions never fail: they return a default
// together with an Outcome, and callers attach a Note to the affected record
// whenever the Outcome reports a coercion.
package normalize
