package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	statusLabelWidth = 24
	statusIndent     = "  "
)

// palette holds the report colors. Every color is forced on or off so output
// does not depend on whether stdout happens to be a terminal.
type palette struct {
	header *color.Color
	ok     *color.Color
	warn   *color.Color
	err    *color.Color
	info   *color.Color
	bar    *color.Color
	source *color.Color
	dim    *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		header: mk(color.FgCyan, color.Bold),
		ok:     mk(color.FgGreen),
		warn:   mk(color.FgYellow),
		err:    mk(color.FgRed, color.Bold),
		info:   mk(color.FgBlue),
		bar:    mk(color.FgGreen),
		source: mk(color.FgMagenta),
		dim:    mk(color.Faint),
	}
}

func (p palette) forKind(kind statusKind) *color.Color {
	switch kind {
	case statusOK:
		return p.ok
	case statusWarn:
		return p.warn
	case statusError:
		return p.err
	default:
		return p.info
	}
}

func renderStatusLine(label string, kind statusKind, message string, p palette) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	return p.forKind(kind).Sprint(base)
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func renderSectionHeader(title string, p palette) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	return []string{p.header.Sprint(line), p.header.Sprint(rule)}
}

// shouldColorize resolves the color mode for writer. auto colors terminals
// only and honours NO_COLOR.
func shouldColorize(mode string, writer io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(writer)
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
