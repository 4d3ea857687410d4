package hubspot

import (
	"context"
	"encoding/json"
	"fmt"
)

type associationsResponse struct {
	Results []associationResult `json:"results"`
}

type associationResult struct {
	ID string `json:"id"`
	// ToObjectID is the legacy response shape; newer payloads use "id".
	ToObjectID json.RawMessage `json:"toObjectId"`
}

// AssociatedContactIDs returns the ordered contact ids related to a deal,
// exactly as reported by the server; an empty slice means no associations.
// Any transport or API failure here is fatal to the run.
func (a *API) AssociatedContactIDs(ctx context.Context, deal DealID) ([]ContactID, error) {
	raw, err := a.associationIDs(ctx, deal, "contacts")
	if err != nil {
		return nil, err
	}
	ids := make([]ContactID, len(raw))
	for i, id := range raw {
		ids[i] = ContactID(id)
	}
	return ids, nil
}

// AssociatedCompanyIDs returns the ordered company ids related to a deal.
// Same contract as AssociatedContactIDs.
func (a *API) AssociatedCompanyIDs(ctx context.Context, deal DealID) ([]CompanyID, error) {
	raw, err := a.associationIDs(ctx, deal, "companies")
	if err != nil {
		return nil, err
	}
	ids := make([]CompanyID, len(raw))
	for i, id := range raw {
		ids[i] = CompanyID(id)
	}
	return ids, nil
}

func (a *API) associationIDs(ctx context.Context, deal DealID, toObject string) ([]string, error) {
	path := fmt.Sprintf("/crm/v3/objects/deals/%s/associations/%s", deal, toObject)

	var resp associationsResponse
	if err := a.client.GetJSON(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		switch {
		case r.ID != "":
			ids = append(ids, r.ID)
		case len(r.ToObjectID) > 0:
			if id := rawString(r.ToObjectID); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}
