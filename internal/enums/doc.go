// Package enums resolves Kaltura status and type codes to labels and back.
//
// Each Domain is a closed table. Lookups are total: an unrecognized code
// becomes an "UNKNOWN(<code>)" label instead of an error so that values added
// to the platform after this tool was written still produce a report.
package enums
