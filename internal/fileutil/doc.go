// Package fileutil holds file helpers shared by the CLI: lock-guarded atomic
// writes for report and config files.
package fileutil
