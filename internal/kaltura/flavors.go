package kaltura

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"flavorcheck/internal/flavor"
	"flavorcheck/internal/services"
)

// maxPages bounds pagination against a server that never returns a short page.
const maxPages = 1000

// PageFunc observes pagination progress: the page just fetched, the records
// collected so far and the server-reported total (0 when unknown).
type PageFunc func(page, fetched, total int)

type flavorAssetListResponse struct {
	Objects    []flavor.Record `json:"objects"`
	TotalCount int             `json:"totalCount"`
}

// ListFlavorAssets returns every flavor asset of entryID, following pages
// until a short page or the reported total is reached.
func (c *Client) ListFlavorAssets(ctx context.Context, entryID string, onPage PageFunc) ([]flavor.Record, error) {
	var all []flavor.Record
	for page := 1; page <= maxPages; page++ {
		params := url.Values{}
		params.Set("filter[objectType]", "KalturaFlavorAssetFilter")
		params.Set("filter[entryIdEqual]", entryID)
		params.Set("pager[objectType]", "KalturaFilterPager")
		params.Set("pager[pageSize]", strconv.Itoa(c.pageSize))
		params.Set("pager[pageIndex]", strconv.Itoa(page))

		var resp flavorAssetListResponse
		if err := c.call(ctx, "flavorAsset", "list", params, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Objects...)
		if onPage != nil {
			onPage(page, len(all), resp.TotalCount)
		}
		if len(resp.Objects) < c.pageSize {
			return all, nil
		}
		if resp.TotalCount > 0 && len(all) >= resp.TotalCount {
			return all, nil
		}
	}
	return nil, services.Wrap(services.ErrAPICall, component, "flavorAsset.list", "pagination did not terminate", nil)
}

// FlavorURL resolves a playable URL for one flavor asset, falling back to
// the download URL action when getUrl is refused.
func (c *Client) FlavorURL(ctx context.Context, assetID string) (string, error) {
	params := url.Values{}
	params.Set("id", assetID)
	var link string
	err := c.call(ctx, "flavorAsset", "getUrl", params, &link)
	if err != nil {
		var fallbackErr error
		if fallbackErr = c.call(ctx, "flavorAsset", "getDownloadUrl", params, &link); fallbackErr != nil {
			return "", err
		}
	}
	return strings.TrimSpace(link), nil
}

// SourceDownloadURL builds the playManifest URL that serves the original
// upload of entryID.
func SourceDownloadURL(partnerID int, entryID string) string {
	pid := strconv.Itoa(partnerID)
	return "https://cdnapisec.kaltura.com/p/" + pid + "/sp/" + pid + "00/playManifest/entryId/" +
		url.PathEscape(entryID) + "/format/download/protocol/https/flavorParamIds/0"
}
