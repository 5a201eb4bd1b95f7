package kaltura

import (
	"context"
	"net/url"
	"strings"

	"flavorcheck/internal/normalize"
	"flavorcheck/internal/services"
)

// Entry is a baseEntry/mediaEntry as returned by baseEntry.get. Enumerated
// and numeric fields stay raw; plugin enums arrive as dotted strings.
type Entry struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	PartnerID           normalize.Field `json:"partnerId"`
	UserID              string          `json:"userId"`
	Type                normalize.Field `json:"type"`
	MediaType           normalize.Field `json:"mediaType"`
	Status              normalize.Field `json:"status"`
	SourceType          normalize.Field `json:"sourceType"`
	Duration            normalize.Field `json:"duration"`
	MsDuration          normalize.Field `json:"msDuration"`
	CreatedAt           normalize.Field `json:"createdAt"`
	UpdatedAt           normalize.Field `json:"updatedAt"`
	Width               normalize.Field `json:"width"`
	Height              normalize.Field `json:"height"`
	ConversionProfileID normalize.Field `json:"conversionProfileId"`
	FlavorParamsIDs     string          `json:"flavorParamsIds"`
	Tags                string          `json:"tags"`
}

// GetEntry fetches one entry. An unknown id yields an error matching
// services.ErrNotFound.
func (c *Client) GetEntry(ctx context.Context, entryID string) (*Entry, error) {
	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return nil, services.Wrap(services.ErrValidation, component, "baseEntry.get", "entry id is required", nil)
	}
	params := url.Values{}
	params.Set("entryId", entryID)
	var entry Entry
	if err := c.call(ctx, "baseEntry", "get", params, &entry); err != nil {
		return nil, err
	}
	if strings.TrimSpace(entry.ID) == "" {
		return nil, services.Wrap(services.ErrNotFound, component, "baseEntry.get", "entry "+entryID+" returned no id", nil)
	}
	return &entry, nil
}
