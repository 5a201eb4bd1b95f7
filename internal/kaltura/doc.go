// Package kaltura is a small client for the Kaltura api_v3 JSON endpoints
// used to inspect an entry: session start, entry lookup, paginated flavor
// asset listing, conversion profiles and flavor params.
//
// Calls are rate limited and retried with exponential backoff on transient
// HTTP failures. Platform exceptions (KalturaAPIException payloads) are
// surfaced as *APIError wrapped with the services error markers so the CLI
// can map them onto exit codes.
package kaltura
