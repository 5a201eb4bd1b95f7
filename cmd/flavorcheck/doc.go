// Package main hosts the flavorcheck CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, layers flag overrides on
// top, and hands the work to internal/report. Rendering (text sections,
// go-pretty tables, colors and the stderr progress bar) lives here; the
// analysis itself does not.
//
// Exit codes come from services.ExitCode so scripts can branch on
// authentication failures, missing entries, API failures and interrupts.
package main
