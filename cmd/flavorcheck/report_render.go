package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"flavorcheck/internal/flavor"
	"flavorcheck/internal/ladder"
	"flavorcheck/internal/profile"
	"flavorcheck/internal/quality"
	"flavorcheck/internal/report"
	"flavorcheck/internal/textutil"
)

const (
	fieldLabelWidth = 14
	barGlyph        = "█"
	timeLayout      = "2006-01-02 15:04:05 UTC"
)

type renderOptions struct {
	Colorize    bool
	IncludeURLs bool
	// Now anchors relative timestamps.
	Now time.Time
}

type textRenderer struct {
	b    strings.Builder
	rep  *report.Report
	p    palette
	opts renderOptions
}

// renderReport writes the human readable report: overview, conversion
// profile, summary, visual ladder, skipped flavors, issues, warnings and the
// ladder table.
func renderReport(w io.Writer, rep *report.Report, opts renderOptions) error {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	r := &textRenderer{rep: rep, p: newPalette(opts.Colorize), opts: opts}
	r.overview()
	r.conversionProfile()
	r.summary()
	r.visualLadder()
	r.skipped()
	r.issues()
	r.warnings()
	r.ladderTable()
	_, err := io.WriteString(w, r.b.String())
	return err
}

func (r *textRenderer) line(format string, args ...any) {
	fmt.Fprintf(&r.b, format, args...)
	r.b.WriteByte('\n')
}

func (r *textRenderer) section(title string) {
	for _, l := range renderSectionHeader(title, r.p) {
		r.line("%s", l)
	}
}

func (r *textRenderer) field(label, value string) {
	r.line("%s%-*s %s", statusIndent, fieldLabelWidth, label+":", value)
}

func (r *textRenderer) status(label string, kind statusKind, message string) {
	r.line("%s", renderStatusLine(label, kind, message, r.p))
}

func (r *textRenderer) overview() {
	e := r.rep.Entry
	r.section("Overview")
	name := e.Name
	if name == "" {
		name = "(untitled)"
	}
	r.field("Entry", fmt.Sprintf("%s  %s", e.ID, name))
	r.field("Partner", strconv.Itoa(e.PartnerID))
	if e.UserID != "" {
		r.field("User", e.UserID)
	}
	r.field("Type", e.Type.String())
	r.field("Status", e.Status.String())
	r.field("Source type", e.SourceType.String())
	if d, ok := e.Duration(); ok {
		r.field("Duration", fmt.Sprintf("%s (%s)", d, e.DurationBasis))
	} else {
		r.field("Duration", "unknown")
	}
	if e.Width > 0 && e.Height > 0 {
		r.field("Dimensions", fmt.Sprintf("%dx%d", e.Width, e.Height))
	}
	r.field("Created", r.timestamp(e.CreatedAt))
	r.field("Updated", r.timestamp(e.UpdatedAt))
	if e.Tags != "" {
		r.field("Tags", e.Tags)
	}
	if e.Description != "" {
		r.field("Description", e.Description)
	}
	r.field("Source URL", e.SourceDownloadURL)
	r.field("Run", r.p.dim.Sprint(r.rep.RunID))
	r.line("")
}

func (r *textRenderer) timestamp(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return fmt.Sprintf("%s (%s)", t.UTC().Format(timeLayout), humanize.RelTime(*t, r.opts.Now, "ago", "from now"))
}

func (r *textRenderer) conversionProfile() {
	r.section("Conversion Profile")
	prof := r.rep.Profile
	if prof == nil || prof.ID <= 0 {
		r.status("Profile", statusWarn, "entry has no conversion profile")
		r.line("")
		return
	}
	name := prof.Name
	if prof.IsDefault {
		name += " [default]"
	}
	r.field("Profile", fmt.Sprintf("%s (id %d)", name, prof.ID))
	r.field("Type", prof.Type.String())
	r.field("Status", prof.Status.String())
	if prof.Description != "" {
		r.field("Description", prof.Description)
	}
	enabled := "none"
	if len(prof.EnabledParamIDs) > 0 {
		enabled = textutil.JoinInts(prof.EnabledParamIDs, ", ")
	}
	r.field("Enabled", enabled)

	if len(prof.EnabledParamIDs) > 0 {
		rows := make([][]string, 0, len(prof.EnabledParamIDs))
		for _, id := range prof.EnabledParamIDs {
			rows = append(rows, r.targetRow(prof, id))
		}
		r.line("%s", renderTable([]column{
			right("Param"), wrapped("Name", 32), right("Target"), right("Video kbps"),
			left("Codec"), left("Flavor"), left("Category"),
		}, rows))
	}

	a := r.rep.Analysis
	if a.Unconfigured {
		r.status("Configuration", statusWarn, "no flavor params are enabled")
	}
	r.idStatus("Missing params", a.MissingParamIDs, "")
	r.idStatus("Ready, not in profile", a.NotSeenParamIDs, "")
	r.bitrateStatus(a.AboveSource)
	r.dimensionStatus(a.AboveSourceDimensions)
	r.duplicateStatus(a.NearDuplicateGroups, a.Threshold)
	r.line("%s%s", statusIndent, r.p.dim.Sprint("Param 0 is the uploaded source; it is not transcoded."))
	r.line("")
}

func (r *textRenderer) targetRow(prof *report.ProfileSummary, id int) []string {
	row := []string{strconv.Itoa(id), "-", "-", "-", "-", "-", "missing"}
	if id == 0 {
		row[1] = "Source"
	}
	if t, ok := prof.Target(id); ok {
		row[1] = orDash(t.Name)
		if t.Width > 0 || t.Height > 0 {
			row[2] = fmt.Sprintf("%dx%d", t.Width, t.Height)
		}
		if t.VideoBitrate > 0 {
			row[3] = strconv.Itoa(t.VideoBitrate)
		}
		row[4] = orDash(t.VideoCodec)
	}
	for _, f := range r.rep.Flavors {
		if f.ParamID == id {
			row[5] = f.AssetID
			row[6] = f.Category.Display()
			break
		}
	}
	return row
}

func (r *textRenderer) idStatus(label string, ids []int, suffix string) {
	if len(ids) == 0 {
		r.status(label, statusOK, "none")
		return
	}
	r.status(label, statusWarn, textutil.JoinInts(ids, ", ")+suffix)
}

func (r *textRenderer) bitrateStatus(c profile.BitrateCheck) {
	const label = "Above source bitrate"
	if !c.Evaluable {
		r.status(label, statusInfo, c.Reason)
		return
	}
	r.idStatus(label, c.ParamIDs, fmt.Sprintf(" (source %d kbps)", c.SourceBitrate))
}

func (r *textRenderer) dimensionStatus(c profile.DimensionCheck) {
	const label = "Above source resolution"
	if !c.Evaluable {
		r.status(label, statusInfo, c.Reason)
		return
	}
	r.idStatus(label, c.ParamIDs, fmt.Sprintf(" (source %dx%d)", c.SourceWidth, c.SourceHeight))
}

func (r *textRenderer) duplicateStatus(groups []profile.DuplicateGroup, threshold float64) {
	const label = "Near duplicates"
	if len(groups) == 0 {
		r.status(label, statusOK, fmt.Sprintf("none within %.0f%%", threshold*100))
		return
	}
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, fmt.Sprintf("%s (%d-%d kbps)", textutil.JoinInts(g.ParamIDs, "/"), g.MinBitrate, g.MaxBitrate))
	}
	r.status(label, statusWarn, strings.Join(parts, "; "))
}

func (r *textRenderer) summary() {
	s := r.rep.Ladder.Summary
	r.section("Summary")
	for _, c := range flavor.Categories() {
		r.field(c.Display(), strconv.Itoa(s.Count(c)))
	}
	r.field("Total", strconv.Itoa(s.Total))
	if s.ReadyBitrateKnown {
		r.field("Ready kbps", fmt.Sprintf("%d → %d", s.ReadyMinBitrate, s.ReadyMaxBitrate))
	} else {
		r.field("Ready kbps", "unknown")
	}
	if s.TotalSizeKB > 0 {
		r.field("Total size", humanize.Bytes(uint64(s.TotalSizeKB)*1024))
	}
	r.field("Codecs", r.codecCounts())
	low, high := 0, 0
	for _, q := range r.rep.Quality {
		if q.HasFlag(quality.FlagTooLow) {
			low++
		}
		if q.HasFlag(quality.FlagTooHigh) {
			high++
		}
	}
	r.field("Bitrate", fmt.Sprintf("possibly low %d, possibly high %d", low, high))
	kind := statusOK
	if s.IssueCount > 0 {
		kind = statusWarn
	}
	r.status("Ladder issues", kind, strconv.Itoa(s.IssueCount))
	r.line("")
}

func (r *textRenderer) codecCounts() string {
	counts := map[string]int{}
	for _, f := range r.rep.Flavors {
		if !f.Category.InLadder() {
			continue
		}
		counts[orValue(f.VideoCodec, "unknown")]++
	}
	if len(counts) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(counts))
	for _, codec := range slices.Sorted(maps.Keys(counts)) {
		parts = append(parts, fmt.Sprintf("%s:%d", codec, counts[codec]))
	}
	return strings.Join(parts, ", ")
}

func (r *textRenderer) visualLadder() {
	entries := r.rep.Ladder.Entries
	r.section("Visual Ladder")
	if len(entries) == 0 {
		r.line("%sNo playable rungs found.", statusIndent)
		r.line("")
		return
	}
	labelWidth, barMax := 0, 0
	for _, e := range entries {
		labelWidth = max(labelWidth, len(e.Label))
		barMax = max(barMax, e.BarWidth)
	}
	for _, e := range entries {
		c := r.p.bar
		if e.Category == flavor.CategorySource {
			c = r.p.source
		}
		bar := c.Sprint(strings.Repeat(barGlyph, e.BarWidth)) + strings.Repeat(" ", barMax-e.BarWidth)
		step := ""
		if e.StepRatio > 0 {
			step = fmt.Sprintf("  x%.2f", e.StepRatio)
		}
		r.line("%s%-*s %s %6d kbps%s", statusIndent, labelWidth, e.Label, bar, e.Bitrate, step)
	}
	if notes := r.rep.Ladder.SwitchingNotes; len(notes) > 0 {
		r.line("%sAim for roughly 1.3-1.6x between adjacent rungs for stable switching.", statusIndent)
		for _, n := range notes {
			r.line("%s%s", statusIndent, r.switchingNote(n))
		}
	}
	r.line("")
}

func (r *textRenderer) switchingNote(n ladder.SwitchingNote) string {
	return r.p.warn.Sprint("- " + n.Message)
}

func (r *textRenderer) skipped() {
	groups := r.rep.Skipped
	if len(groups) == 0 {
		return
	}
	r.section("Skipped (NOT_APPLICABLE)")
	for _, g := range groups {
		if len(g.AssetIDs) == 1 {
			r.line("%s• %s (param %d)", statusIndent, g.AssetIDs[0], g.ParamIDs[0])
		} else {
			r.line("%s• %d flavors: %s", statusIndent, len(g.AssetIDs), strings.Join(g.AssetIDs, ", "))
		}
		r.line("%s  Reason: %s", statusIndent, g.Reason)
	}
	r.line("")
}

func (r *textRenderer) issues() {
	r.section("Issues")
	if len(r.rep.Issues) == 0 {
		r.line("%s%s", statusIndent, r.p.ok.Sprint("None"))
		r.line("")
		return
	}
	for _, is := range r.rep.Issues {
		c := r.p.warn
		if is.Kind == quality.IssueError {
			c = r.p.err
		}
		subject := is.AssetID
		if subject == "" {
			subject = "profile"
		}
		r.line("%s%s", statusIndent, c.Sprintf("- %s: %s", subject, is.Message))
	}
	r.line("")
}

func (r *textRenderer) warnings() {
	if len(r.rep.Warnings) == 0 {
		return
	}
	r.section("Warnings")
	for _, w := range r.rep.Warnings {
		r.line("%s%s", statusIndent, r.p.warn.Sprintf("- %s: %s", w.Code, w.Message))
	}
	r.line("")
}

func (r *textRenderer) ladderTable() {
	r.section("Ladder")
	if len(r.rep.Flavors) == 0 {
		r.line("%sNo flavor assets.", statusIndent)
		return
	}
	assessed := make(map[string]quality.Assessment, len(r.rep.Quality))
	for _, q := range r.rep.Quality {
		assessed[q.AssetID] = q
	}
	flavors := slices.Clone(r.rep.Flavors)
	slices.SortStableFunc(flavors, func(a, b flavor.Classified) int {
		if a.Bitrate != b.Bitrate {
			return a.Bitrate - b.Bitrate
		}
		return strings.Compare(a.AssetID, b.AssetID)
	})

	columns := []column{
		left("Asset"), right("Param"), left("Type"), left("Status"), right("kbps"), right("WxH"),
		right("FPS"), left("Codec"), right("Size"), right("Exp"), right("Δ%"), right("BPP"), wrapped("Flags", 28),
	}
	if r.opts.IncludeURLs {
		columns = append(columns, wrapped("URL", 60))
	}
	rows := make([][]string, 0, len(flavors))
	for _, f := range flavors {
		row := []string{
			f.AssetID,
			strconv.Itoa(f.ParamID),
			f.Category.Display(),
			fmt.Sprintf("%s (%d)", f.Label, f.StatusCode),
			intOrDash(f.Bitrate),
			"-",
			"-",
			orDash(f.VideoCodec),
			"-",
			"-", "-", "-", "-",
		}
		if f.HasDimensions() {
			row[5] = fmt.Sprintf("%dx%d", f.Width, f.Height)
		}
		if fps := f.FPS(); fps > 0 {
			row[6] = strconv.FormatFloat(fps, 'f', -1, 64)
		}
		if f.SizeKB > 0 {
			row[8] = humanize.Bytes(uint64(f.SizeKB) * 1024)
		}
		if q, ok := assessed[f.AssetID]; ok {
			row[9] = intOrDash(q.ExpectedKbps)
			if q.DeltaPercent != nil {
				row[10] = fmt.Sprintf("%+.0f%%", *q.DeltaPercent)
			}
			if q.BitsPerPixel != nil {
				row[11] = strconv.FormatFloat(*q.BitsPerPixel, 'f', 3, 64)
			}
			if len(q.Flags) > 0 {
				row[12] = strings.Join(q.Flags, ", ")
			}
		}
		if r.opts.IncludeURLs {
			row = append(row, orDash(f.DownloadURL))
		}
		rows = append(rows, row)
	}
	r.line("%s", renderTable(columns, rows))
}

func orDash(s string) string {
	return orValue(s, "-")
}

func orValue(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func intOrDash(v int) string {
	if v <= 0 {
		return "-"
	}
	return strconv.Itoa(v)
}
