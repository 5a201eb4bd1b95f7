// Package services defines shared utilities consumed by the API client, the
// report inspector, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp entry IDs, partner IDs, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures
//     into the stable process exit codes automated callers branch on.
//
// Use these helpers when adding new API calls so failure handling and
// observability stay uniform across a run.
package services
