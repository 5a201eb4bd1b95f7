package report

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"flavorcheck/internal/enums"
	"flavorcheck/internal/flavor"
	"flavorcheck/internal/kaltura"
	"flavorcheck/internal/ladder"
	"flavorcheck/internal/logging"
	"flavorcheck/internal/normalize"
	"flavorcheck/internal/profile"
	"flavorcheck/internal/quality"
	"flavorcheck/internal/services"
	"flavorcheck/internal/textutil"
)

const component = "inspector"

// Warning codes raised by the inspector itself.
const (
	WarnNoProfile     = "no_conversion_profile"
	WarnURLUnresolved = "download_url_unresolved"
)

// Fetcher is the data source for one inspection. *kaltura.Client satisfies it.
type Fetcher interface {
	PartnerID() int
	GetEntry(ctx context.Context, entryID string) (*kaltura.Entry, error)
	ListFlavorAssets(ctx context.Context, entryID string, onPage kaltura.PageFunc) ([]flavor.Record, error)
	GetConversionProfile(ctx context.Context, id int) (*kaltura.ConversionProfile, error)
	EnabledParamIDs(ctx context.Context, profileID int, csv string) ([]int, error)
	GetFlavorParams(ctx context.Context, id int) (flavor.Target, error)
	FlavorURL(ctx context.Context, assetID string) (string, error)
}

// Options tunes one inspection.
type Options struct {
	IncludeURLs bool
	Analysis    profile.Options
	Ladder      ladder.Options
	// OnFlavorPage observes flavor list pagination.
	OnFlavorPage kaltura.PageFunc
	// OnParams observes flavor params resolution (done of total).
	OnParams func(done, total int)
}

// Inspector builds reports from a Fetcher.
type Inspector struct {
	fetcher Fetcher
	logger  *slog.Logger
	opts    Options
	now     func() time.Time
	newID   func() string
}

// NewInspector constructs an Inspector. A nil logger discards output.
func NewInspector(fetcher Fetcher, logger *slog.Logger, opts Options) *Inspector {
	return &Inspector{
		fetcher: fetcher,
		logger:  logging.NewComponentLogger(logger, component),
		opts:    opts,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Inspect fetches everything known about entryID and analyzes it. Errors
// from the entry, flavor list and conversion profile fetches are fatal and
// keep their services marker; flavor params and URL failures become report
// warnings.
func (i *Inspector) Inspect(ctx context.Context, entryID string) (*Report, error) {
	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return nil, services.Wrap(services.ErrValidation, component, "inspect", "entry id is required", nil)
	}
	runID := i.newID()
	ctx = services.WithRequestID(ctx, runID)
	ctx = services.WithEntryID(ctx, entryID)
	ctx = services.WithPartnerID(ctx, i.fetcher.PartnerID())
	logger := logging.WithContext(ctx, i.logger)

	started := i.now()
	logger.Info("inspection started")

	entry, err := i.fetcher.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	records, err := i.fetcher.ListFlavorAssets(ctx, entry.ID, i.opts.OnFlavorPage)
	if err != nil {
		return nil, err
	}
	logger.Debug("flavor assets fetched", logging.Int("count", len(records)))

	rep := &Report{
		RunID:       runID,
		GeneratedAt: started.UTC(),
		Entry:       summarizeEntry(entry, records, i.fetcher.PartnerID()),
		Warnings:    []profile.Warning{},
	}

	prof, summary, err := i.resolveProfile(ctx, logger, rep)
	if err != nil {
		return nil, err
	}
	rep.Profile = summary
	prof.SourceWidth, prof.SourceHeight = rep.Entry.Width, rep.Entry.Height

	classifier := flavor.NewClassifier(records, rep.Entry.Width, rep.Entry.Height, prof.Targets)
	rep.Flavors = classifier.ClassifyAll(records, prof.EnabledParamIDs)
	if i.opts.IncludeURLs {
		if err := i.attachURLs(ctx, logger, rep); err != nil {
			return nil, err
		}
	}

	rep.Analysis = profile.Analyze(prof, rep.Flavors, i.opts.Analysis)
	rep.Ladder = ladder.Build(rep.Flavors, rep.Analysis, i.opts.Ladder)
	rep.Quality = quality.AssessAll(ladderFlavors(rep.Flavors), sourceHeight(rep))
	rep.Skipped = GroupSkipped(rep.Flavors)
	rep.Issues = BuildIssues(rep.Flavors, rep.Analysis)
	rep.Warnings = slices.Concat(rep.Analysis.Warnings, rep.Warnings)

	for _, w := range rep.Analysis.Warnings {
		logging.WarnWithContext(logger, w.Message, w.Code,
			logging.String(logging.FieldImpact, "reported as a configuration anomaly"),
			logging.String(logging.FieldErrorHint, "review the conversion profile"),
		)
	}
	logger.Info("inspection complete",
		logging.Int("flavors", len(rep.Flavors)),
		logging.Int("ladder_rungs", len(rep.Ladder.Entries)),
		logging.Int("issues", len(rep.Issues)),
		logging.Duration("elapsed", i.now().Sub(started)),
	)
	return rep, nil
}

func (i *Inspector) resolveProfile(ctx context.Context, logger *slog.Logger, rep *Report) (profile.Profile, *ProfileSummary, error) {
	id := rep.Entry.ConversionProfileID
	if id <= 0 {
		rep.Warnings = append(rep.Warnings, profile.Warning{
			Code:    WarnNoProfile,
			Message: "No conversion profile associated with this entry",
		})
		return profile.Profile{}, nil, nil
	}
	cp, err := i.fetcher.GetConversionProfile(ctx, id)
	if err != nil {
		return profile.Profile{}, nil, err
	}
	enabled, err := i.fetcher.EnabledParamIDs(ctx, id, cp.FlavorParamsIDs)
	if err != nil {
		return profile.Profile{}, nil, err
	}

	prof := profile.Profile{
		ID:              id,
		Name:            textutil.CleanText(cp.Name),
		Description:     textutil.CleanText(cp.Description),
		IsDefault:       normalize.Flag(cp.IsDefault),
		EnabledParamIDs: enabled,
		Targets:         make(map[int]flavor.Target, len(enabled)),
	}
	summary := &ProfileSummary{
		ID:              id,
		Name:            prof.Name,
		Description:     prof.Description,
		Type:            enumOf(enums.ProfileType, cp.Type),
		Status:          enumOf(enums.ProfileStatus, cp.Status),
		IsDefault:       prof.IsDefault,
		EnabledParamIDs: enabled,
		Targets:         []flavor.Target{},
	}
	prof.Type = summary.Type.Label
	prof.Status = summary.Status.Label

	var unresolved []int
	for n, paramID := range enabled {
		if i.opts.OnParams != nil {
			i.opts.OnParams(n, len(enabled))
		}
		if paramID == 0 {
			continue
		}
		target, err := i.fetcher.GetFlavorParams(ctx, paramID)
		if err != nil {
			if ctx.Err() != nil {
				return profile.Profile{}, nil, services.Wrap(services.ErrAPICall, component, "flavorParams.get", "interrupted", ctx.Err())
			}
			unresolved = append(unresolved, paramID)
			logging.WarnWithContext(logger, "flavor params unavailable", profile.WarnParamsUnresolved,
				logging.ParamID(paramID),
				logging.Error(err),
				logging.String(logging.FieldImpact, "skip reasons and resolution checks omit this target"),
			)
			continue
		}
		prof.Targets[paramID] = target
		summary.Targets = append(summary.Targets, target)
	}
	if i.opts.OnParams != nil {
		i.opts.OnParams(len(enabled), len(enabled))
	}
	if len(unresolved) > 0 {
		rep.Warnings = append(rep.Warnings, profile.Warning{
			Code:    profile.WarnParamsUnresolved,
			Message: "Flavor params could not be fetched: " + textutil.JoinInts(unresolved, ", "),
		})
	}
	slices.SortFunc(summary.Targets, func(a, b flavor.Target) int { return a.ParamID - b.ParamID })
	return prof, summary, nil
}

func (i *Inspector) attachURLs(ctx context.Context, logger *slog.Logger, rep *Report) error {
	var failed []string
	for n, f := range rep.Flavors {
		if !f.Category.InLadder() || f.AssetID == "" {
			continue
		}
		link, err := i.fetcher.FlavorURL(ctx, f.AssetID)
		if err != nil {
			if ctx.Err() != nil {
				return services.Wrap(services.ErrAPICall, component, "flavorAsset.getUrl", "interrupted", ctx.Err())
			}
			failed = append(failed, f.AssetID)
			logger.Debug("flavor url unavailable", logging.AssetID(f.AssetID), logging.Error(err))
			continue
		}
		rep.Flavors[n] = f.WithDownloadURL(link)
	}
	if len(failed) > 0 {
		rep.Warnings = append(rep.Warnings, profile.Warning{
			Code:    WarnURLUnresolved,
			Message: fmt.Sprintf("Download URL unavailable for %s", strings.Join(failed, ", ")),
		})
	}
	return nil
}

func ladderFlavors(flavors []flavor.Classified) []flavor.Classified {
	out := make([]flavor.Classified, 0, len(flavors))
	for _, f := range flavors {
		if f.Category.InLadder() {
			out = append(out, f)
		}
	}
	return out
}

func sourceHeight(rep *Report) int {
	if src, ok := rep.Source(); ok && src.Height > 0 {
		return src.Height
	}
	return rep.Entry.Height
}
