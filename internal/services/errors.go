package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAuthentication = errors.New("authentication failure")
	ErrNotFound       = errors.New("not found")
	ErrAPICall        = errors.New("api call failure")
	ErrConfiguration  = errors.New("configuration error")
	ErrValidation     = errors.New("validation error")
	ErrTimeout        = errors.New("timeout")
	ErrTransient      = errors.New("transient failure")
)

// Process exit codes. Automated callers branch on these, so the values are
// part of the command's contract and must not be renumbered.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitAuthFailure  = 2
	ExitEntryMissing = 3
	ExitAPIFailure   = 4
	ExitInterrupted  = 130
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later exit-code classification. The marker should
// be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrAPICall
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps a run error to the process exit code. Cancellation wins over
// every other marker because an interrupted paginated fetch usually surfaces
// as a wrapped API failure as well.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, ErrAuthentication):
		return ExitAuthFailure
	case errors.Is(err, ErrNotFound):
		return ExitEntryMissing
	case errors.Is(err, ErrAPICall), errors.Is(err, ErrTimeout), errors.Is(err, ErrTransient):
		return ExitAPIFailure
	default:
		return ExitFailure
	}
}

// Category returns the short taxonomy name for err, used in structured logs.
func Category(err error) string {
	switch ExitCode(err) {
	case ExitOK:
		return ""
	case ExitInterrupted:
		return "interrupted"
	case ExitAuthFailure:
		return "authentication_failure"
	case ExitEntryMissing:
		return "entry_not_found"
	case ExitAPIFailure:
		return "api_call_failure"
	}
	if errors.Is(err, ErrConfiguration) || errors.Is(err, ErrValidation) {
		return "configuration_error"
	}
	return "unexpected_error"
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
