// Package ladder turns classified flavors into summary counts and the
// ordered bitrate ladder drawn by the renderers.
//
// Bar widths are computed here so renderers only print them.
package ladder
