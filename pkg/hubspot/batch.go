package hubspot

import (
	"context"
)

// batchChunkSize is the maximum number of inputs per batch read call.
const batchChunkSize = 100

type batchReadRequest struct {
	Properties []string     `json:"properties"`
	Inputs     []batchInput `json:"inputs"`
}

type batchInput struct {
	ID string `json:"id"`
}

type batchReadResponse struct {
	Results []objectResult `json:"results"`
}

// BatchReadContacts loads contact properties for the given ids. The input
// may contain duplicates and empty ids; both are dropped before chunked
// retrieval. An id absent from the result map was not found (deleted or
// archived) - that is not an error, callers treat a missing key as "no
// properties available".
func (a *API) BatchReadContacts(ctx context.Context, ids []ContactID) (map[ContactID]Contact, error) {
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = string(id)
	}

	props, err := a.batchRead(ctx, "contacts", raw, contactProperties)
	if err != nil {
		return nil, err
	}

	contacts := make(map[ContactID]Contact, len(props))
	for id, p := range props {
		contacts[ContactID(id)] = Contact{
			ID:        ContactID(id),
			FirstName: p["firstname"],
			LastName:  p["lastname"],
			Email:     p["email"],
		}
	}
	return contacts, nil
}

// BatchReadCompanies loads company properties for the given ids. Same
// contract as BatchReadContacts.
func (a *API) BatchReadCompanies(ctx context.Context, ids []CompanyID) (map[CompanyID]Company, error) {
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = string(id)
	}

	props, err := a.batchRead(ctx, "companies", raw, companyProperties)
	if err != nil {
		return nil, err
	}

	companies := make(map[CompanyID]Company, len(props))
	for id, p := range props {
		companies[CompanyID(id)] = Company{
			ID:     CompanyID(id),
			Name:   p["name"],
			Domain: p["domain"],
		}
	}
	return companies, nil
}

// batchRead dedupes ids preserving first-seen order, splits them into
// chunks of at most 100, issues one bulk read per chunk requesting exactly
// the given properties, and merges the responses keyed by id.
func (a *API) batchRead(ctx context.Context, objectType string, ids []string, properties []string) (map[string]map[string]string, error) {
	result := make(map[string]map[string]string)

	unique := dedupe(ids)
	if len(unique) == 0 {
		return result, nil
	}

	for start := 0; start < len(unique); start += batchChunkSize {
		end := min(start+batchChunkSize, len(unique))
		chunk := unique[start:end]

		req := batchReadRequest{
			Properties: properties,
			Inputs:     make([]batchInput, len(chunk)),
		}
		for i, id := range chunk {
			req.Inputs[i] = batchInput{ID: id}
		}

		var resp batchReadResponse
		if err := a.client.PostJSON(ctx, "/crm/v3/objects/"+objectType+"/batch/read", req, &resp); err != nil {
			return nil, err
		}
		for _, r := range resp.Results {
			result[r.ID] = r.Properties
		}
	}

	a.logger.Debug().
		Str("object_type", objectType).
		Int("requested", len(unique)).
		Int("found", len(result)).
		Msg("Batch read complete")

	return result, nil
}

// dedupe drops empty ids and removes duplicates preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
