package kaltura

import (
	"context"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/patrickmn/go-cache"

	"flavorcheck/internal/flavor"
	"flavorcheck/internal/normalize"
	"flavorcheck/internal/services"
)

// ConversionProfile is a conversionProfile.get response.
type ConversionProfile struct {
	ID              normalize.Field `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Type            normalize.Field `json:"type"`
	Status          normalize.Field `json:"status"`
	IsDefault       normalize.Field `json:"isDefault"`
	FlavorParamsIDs string          `json:"flavorParamsIds"`
}

type assetParamsListResponse struct {
	Objects []struct {
		FlavorParamsID normalize.Field `json:"flavorParamsId"`
	} `json:"objects"`
	TotalCount int `json:"totalCount"`
}

type flavorParamsResponse struct {
	ID           normalize.Field `json:"id"`
	Name         string          `json:"name"`
	Width        normalize.Field `json:"width"`
	Height       normalize.Field `json:"height"`
	VideoBitrate normalize.Field `json:"videoBitrate"`
	VideoCodec   normalize.Field `json:"videoCodec"`
	Tags         string          `json:"tags"`
}

// GetConversionProfile fetches a conversion profile by id.
func (c *Client) GetConversionProfile(ctx context.Context, id int) (*ConversionProfile, error) {
	if id <= 0 {
		return nil, services.Wrap(services.ErrValidation, component, "conversionProfile.get", "profile id must be positive", nil)
	}
	params := url.Values{}
	params.Set("id", strconv.Itoa(id))
	var cp ConversionProfile
	if err := c.call(ctx, "conversionProfile", "get", params, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// EnabledParamIDs returns the sorted flavor params ids enabled on the
// profile, read from its CSV field or, when that is empty, from the
// paginated conversionProfileAssetParams list.
func (c *Client) EnabledParamIDs(ctx context.Context, profileID int, csv string) ([]int, error) {
	if ids := ParseCSVInts(csv); len(ids) > 0 {
		return ids, nil
	}
	var ids []int
	for page := 1; page <= maxPages; page++ {
		params := url.Values{}
		params.Set("filter[objectType]", "KalturaConversionProfileAssetParamsFilter")
		params.Set("filter[conversionProfileIdEqual]", strconv.Itoa(profileID))
		params.Set("pager[pageSize]", strconv.Itoa(c.pageSize))
		params.Set("pager[pageIndex]", strconv.Itoa(page))

		var resp assetParamsListResponse
		if err := c.call(ctx, "conversionProfileAssetParams", "list", params, &resp); err != nil {
			return nil, err
		}
		for _, obj := range resp.Objects {
			if id, outcome := normalize.Int(obj.FlavorParamsID); outcome == normalize.Parsed && id >= 0 {
				ids = append(ids, id)
			}
		}
		if len(resp.Objects) < c.pageSize || (resp.TotalCount > 0 && page*c.pageSize >= resp.TotalCount) {
			break
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

// GetFlavorParams fetches one flavor params definition. Results are
// memoized for the life of the client.
func (c *Client) GetFlavorParams(ctx context.Context, id int) (flavor.Target, error) {
	key := strconv.Itoa(id)
	if cached, ok := c.params.Get(key); ok {
		return cached.(flavor.Target), nil
	}
	params := url.Values{}
	params.Set("id", key)
	var resp flavorParamsResponse
	if err := c.call(ctx, "flavorParams", "get", params, &resp); err != nil {
		return flavor.Target{}, err
	}
	target := flavor.Target{ParamID: id, Name: strings.TrimSpace(resp.Name), Tags: resp.Tags}
	target.Width, _ = normalize.NonNegativeInt(resp.Width, 0)
	target.Height, _ = normalize.NonNegativeInt(resp.Height, 0)
	target.VideoBitrate, _ = normalize.NonNegativeInt(resp.VideoBitrate, 0)
	target.VideoCodec = flavor.NormalizeCodec(normalize.Text(resp.VideoCodec))
	if target.VideoCodec == "" {
		target.VideoCodec = flavor.DeriveVideoCodec(resp.Tags)
	}
	c.params.Set(key, target, cache.DefaultExpiration)
	return target, nil
}

// ParseCSVInts parses "0,487041, 487051" into sorted unique ids, skipping
// tokens that are not integers.
func ParseCSVInts(csv string) []int {
	var out []int
	for _, tok := range strings.Split(csv, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if n, err := strconv.Atoi(tok); err == nil && n >= 0 {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
