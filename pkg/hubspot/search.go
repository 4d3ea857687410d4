package hubspot

import (
	"context"
	"time"
)

// searchPageLimit is the fixed page size for unbounded pagination.
const searchPageLimit = 100

// SearchFilter describes the deal search predicate: a creation time lower
// bound combined (AND) with a set of excluded stages.
type SearchFilter struct {
	CreatedAfter   time.Time
	ExcludedStages []string
}

// YearToDate returns the export policy filter: deals created since the
// start of the current year (UTC), excluding won and lost stages.
func YearToDate(now time.Time) SearchFilter {
	return SearchFilter{
		CreatedAfter:   time.Date(now.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
		ExcludedStages: []string{"closedwon", "closedlost"},
	}
}

type searchRequest struct {
	Limit        int           `json:"limit"`
	Properties   []string      `json:"properties"`
	FilterGroups []filterGroup `json:"filterGroups"`
	Sorts        []sortSpec    `json:"sorts"`
	After        string        `json:"after,omitempty"`
}

type filterGroup struct {
	// Filters are AND-combined within a group.
	Filters []propertyFilter `json:"filters"`
}

type propertyFilter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type sortSpec struct {
	PropertyName string `json:"propertyName"`
	Direction    string `json:"direction"`
}

type searchResponse struct {
	Results []objectResult `json:"results"`
	Paging  *paging        `json:"paging"`
}

// SearchDeals returns deals matching the filter, sorted by creation time
// descending. Server ordering is authoritative and preserved verbatim.
//
// A positive limit issues exactly one request capped at that count, with no
// cursor chaining. A limit <= 0 walks every page of 100 results using the
// server-issued continuation cursor until a response carries no cursor; a
// page with results but no cursor is the final page, not an error.
func (a *API) SearchDeals(ctx context.Context, filter SearchFilter, limit int) ([]Deal, error) {
	if limit > 0 {
		deals, _, err := a.searchPage(ctx, filter, limit, "")
		return deals, err
	}

	var all []Deal
	after := ""
	for {
		deals, next, err := a.searchPage(ctx, filter, searchPageLimit, after)
		if err != nil {
			return nil, err
		}
		all = append(all, deals...)
		if next == "" {
			break
		}
		after = next
	}

	a.logger.Info().
		Int("deals", len(all)).
		Msg("Deal search complete")

	return all, nil
}

// searchPage issues a single search request and returns the page's deals
// plus the next continuation cursor ("" on the final page).
func (a *API) searchPage(ctx context.Context, filter SearchFilter, limit int, after string) ([]Deal, string, error) {
	filters := []propertyFilter{
		{
			PropertyName: "createdate",
			Operator:     "GTE",
			Value:        filter.CreatedAfter.UTC().Format("2006-01-02T15:04:05Z"),
		},
	}
	for _, stage := range filter.ExcludedStages {
		filters = append(filters, propertyFilter{
			PropertyName: "dealstage",
			Operator:     "NEQ",
			Value:        stage,
		})
	}

	req := searchRequest{
		Limit:        limit,
		Properties:   dealProperties,
		FilterGroups: []filterGroup{{Filters: filters}},
		Sorts: []sortSpec{
			{PropertyName: "createdate", Direction: "DESCENDING"},
		},
		After: after,
	}

	var resp searchResponse
	if err := a.client.PostJSON(ctx, "/crm/v3/objects/deals/search", req, &resp); err != nil {
		return nil, "", err
	}

	deals := make([]Deal, 0, len(resp.Results))
	for _, r := range resp.Results {
		deals = append(deals, dealFromResult(r))
	}

	next := ""
	if resp.Paging != nil && resp.Paging.Next != nil {
		next = resp.Paging.Next.After
	}

	a.logger.Debug().
		Int("results", len(deals)).
		Bool("has_next", next != "").
		Msg("Fetched deal search page")

	return deals, next, nil
}

func dealFromResult(r objectResult) Deal {
	return Deal{
		ID:         DealID(r.ID),
		Name:       r.Properties["dealname"],
		Amount:     r.Properties["amount"],
		Stage:      r.Properties["dealstage"],
		OwnerID:    OwnerID(r.Properties["hubspot_owner_id"]),
		CreateDate: r.Properties["createdate"],
		CloseDate:  r.Properties["closedate"],
	}
}
