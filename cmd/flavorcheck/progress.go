package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// fetchProgress draws a transient bar on stderr while flavors are paged in
// and flavor params are resolved. A nil *fetchProgress is a no-op.
type fetchProgress struct {
	bar *progressbar.ProgressBar
}

func newFetchProgress(w io.Writer, enabled, colorize bool) *fetchProgress {
	if !enabled {
		return nil
	}
	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetDescription("fetching flavor assets"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(colorize),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &fetchProgress{bar: bar}
}

func (p *fetchProgress) flavorPage(page, fetched, total int) {
	if p == nil {
		return
	}
	if total > 0 {
		p.bar.ChangeMax(total)
	}
	p.bar.Describe(fmt.Sprintf("fetching flavor assets (page %d)", page))
	_ = p.bar.Set(fetched)
}

func (p *fetchProgress) params(done, total int) {
	if p == nil {
		return
	}
	if done == 0 {
		p.bar.Reset()
		p.bar.ChangeMax(total)
		p.bar.Describe("resolving flavor params")
	}
	_ = p.bar.Set(done)
}

func (p *fetchProgress) finish() {
	if p == nil {
		return
	}
	_ = p.bar.Finish()
}
