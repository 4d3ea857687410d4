// Package hubspot implements the typed HubSpot CRM v3 API surface used by
// the export pipeline:
//
//   - Deal search with cursor pagination (POST /crm/v3/objects/deals/search)
//   - Association resolution (GET /crm/v3/objects/deals/{id}/associations/{kind})
//   - Deduplicated batch entity reads (POST /crm/v3/objects/{kind}/batch/read)
//   - Owner directory with run-scoped caching (GET /crm/v3/owners/)
//
// Identifier types are distinct per entity kind (DealID, ContactID,
// CompanyID, OwnerID) so ids of different kinds cannot be mixed at call
// sites.
//
// Failure policy is deliberately asymmetric: search, association, and batch
// read failures are fatal to a run, while a failed single-owner fallback
// lookup degrades to the raw identifier and the run continues. Both
// behaviors are load-bearing for callers; do not unify them without
// checking every consumer.
package hubspot
