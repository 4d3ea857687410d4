package hubspot

import (
	"strings"
)

// Distinct identifier types per entity kind. All are string-kinded but
// never interchangeable at call sites.
type (
	// DealID identifies a CRM deal record.
	DealID string

	// ContactID identifies a CRM contact record.
	ContactID string

	// CompanyID identifies a CRM company record.
	CompanyID string

	// OwnerID identifies a CRM user (deal owner).
	OwnerID string
)

// Deal is a CRM opportunity record. It is immutable once fetched and
// exists only for the duration of a pipeline run. All property values are
// raw strings passed through from the API; amount and timestamps are not
// parsed at this layer.
type Deal struct {
	ID         DealID
	Name       string
	Amount     string
	Stage      string
	OwnerID    OwnerID
	CreateDate string
	CloseDate  string
}

// Contact holds the contact properties requested by the pipeline.
type Contact struct {
	ID        ContactID
	FirstName string
	LastName  string
	Email     string
}

// Company holds the company properties requested by the pipeline.
type Company struct {
	ID     CompanyID
	Name   string
	Domain string
}

// Property sets requested from the API per entity kind.
var (
	dealProperties    = []string{"dealname", "amount", "dealstage", "closedate", "createdate", "hubspot_owner_id"}
	contactProperties = []string{"firstname", "lastname", "email"}
	companyProperties = []string{"name", "domain"}
)

// DisplayName derives a human-friendly name with fixed precedence:
// trimmed "first last" if non-empty, else email, else the fallback value.
func DisplayName(first, last, email, fallback string) string {
	name := strings.TrimSpace(first + " " + last)
	if name != "" {
		return name
	}
	if email != "" {
		return email
	}
	return fallback
}
