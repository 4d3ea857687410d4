package hubspot

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/salesops/hubspot-export/pkg/logging"
)

type ownerResult struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	// LegacyOwnerID is a secondary identifier occasionally present in
	// listing entries; it aliases the same owner.
	LegacyOwnerID json.RawMessage `json:"ownerId"`
}

type ownerListResponse struct {
	Results []ownerResult `json:"results"`
	Paging  *paging       `json:"paging"`
}

// OwnerDirectory maps owner ids to display names for the lifetime of a
// run. Entries, once populated, are never invalidated. A cache miss
// triggers a single fallback lookup whose outcome - success or failure -
// is memoized, so resolving the same id twice never costs a second call.
type OwnerDirectory struct {
	api    *API
	names  map[OwnerID]string
	logger zerolog.Logger
}

// NewOwnerDirectory walks the full paginated owner listing (non-archived)
// and seeds the cache. Listing failures are fatal; later fallback lookups
// are not.
func NewOwnerDirectory(ctx context.Context, api *API) (*OwnerDirectory, error) {
	d := &OwnerDirectory{
		api:    api,
		names:  make(map[OwnerID]string),
		logger: logging.NewLogger("owner-directory"),
	}

	after := ""
	for {
		params := url.Values{"archived": []string{"false"}}
		if after != "" {
			params.Set("after", after)
		}

		var resp ownerListResponse
		if err := api.client.GetJSON(ctx, "/crm/v3/owners/", params, &resp); err != nil {
			return nil, err
		}

		for _, o := range resp.Results {
			if o.ID == "" {
				continue
			}
			name := DisplayName(o.FirstName, o.LastName, o.Email, o.ID)
			d.names[OwnerID(o.ID)] = name
			if legacy := rawString(o.LegacyOwnerID); legacy != "" {
				d.names[OwnerID(legacy)] = name
			}
		}

		if resp.Paging == nil || resp.Paging.Next == nil || resp.Paging.Next.After == "" {
			break
		}
		after = resp.Paging.Next.After
	}

	d.logger.Info().
		Int("owners", len(d.names)).
		Msg("Owner directory built")

	return d, nil
}

// Resolve returns the display name for an owner id. An empty id resolves
// to the empty string. Cache hits cost no network call. On a miss, a
// single lookup by HUBSPOT_OWNER_ID is attempted; if that lookup fails the
// raw id is used as the name and the run continues.
func (d *OwnerDirectory) Resolve(ctx context.Context, id OwnerID) string {
	if id == "" {
		return ""
	}
	if name, ok := d.names[id]; ok {
		return name
	}

	params := url.Values{"idProperty": []string{"HUBSPOT_OWNER_ID"}}
	var owner ownerResult
	if err := d.api.client.GetJSON(ctx, "/crm/v3/owners/"+string(id), params, &owner); err != nil {
		d.logger.Warn().
			Err(err).
			Str("owner_id", string(id)).
			Msg("Owner fallback lookup failed, using raw id")
		d.names[id] = string(id)
		return string(id)
	}

	name := DisplayName(owner.FirstName, owner.LastName, owner.Email, string(id))
	d.names[id] = name

	d.logger.Debug().
		Str("owner_id", string(id)).
		Msg("Owner resolved via fallback lookup")

	return name
}

// Size returns the number of cached name entries.
func (d *OwnerDirectory) Size() int {
	return len(d.names)
}
