// Package export orchestrates the deal aggregation pipeline and renders
// the normalized row set.
package export

import (
	"context"
	"time"

	"github.com/salesops/hubspot-export/pkg/hubspot"
)

// Header is the fixed output column set, in order.
var Header = []string{
	"deal",
	"value",
	"dealstage",
	"dealowner",
	"expiration_date",
	"created_at_date",
	"customer_name",
	"company_name",
}

// Row is one normalized output record. One row is produced per fetched
// deal regardless of association or entity resolution outcomes.
type Row struct {
	Deal           string
	Value          string
	DealStage      string
	DealOwner      string
	ExpirationDate string
	CreatedAtDate  string
	CustomerName   string
	CompanyName    string
}

// Record returns the row's values in Header order.
func (r Row) Record() []string {
	return []string{
		r.Deal,
		r.Value,
		r.DealStage,
		r.DealOwner,
		r.ExpirationDate,
		r.CreatedAtDate,
		r.CustomerName,
		r.CompanyName,
	}
}

// Field returns the value of the named output column, or "" for an
// unknown column name.
func (r Row) Field(column string) string {
	switch column {
	case "deal":
		return r.Deal
	case "value":
		return r.Value
	case "dealstage":
		return r.DealStage
	case "dealowner":
		return r.DealOwner
	case "expiration_date":
		return r.ExpirationDate
	case "created_at_date":
		return r.CreatedAtDate
	case "customer_name":
		return r.CustomerName
	case "company_name":
		return r.CompanyName
	default:
		return ""
	}
}

// Timestamp layouts accepted by FormatDate: UTC "Z"-suffixed, with and
// without sub-second precision.
var dateLayouts = []string{
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
}

// FormatDate renders the calendar date of a known-format UTC timestamp.
// Unparseable values pass through unchanged - never an error.
func FormatDate(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return raw
}

// projectRow joins one deal with its resolved relations into an output row.
func projectRow(
	ctx context.Context,
	deal hubspot.Deal,
	firstContact hubspot.ContactID,
	firstCompany hubspot.CompanyID,
	contacts map[hubspot.ContactID]hubspot.Contact,
	companies map[hubspot.CompanyID]hubspot.Company,
	owners *hubspot.OwnerDirectory,
) Row {
	customer := ""
	if firstContact != "" {
		if c, ok := contacts[firstContact]; ok {
			customer = hubspot.DisplayName(c.FirstName, c.LastName, c.Email, "")
		}
	}

	company := ""
	if firstCompany != "" {
		if co, ok := companies[firstCompany]; ok {
			company = co.Name
		}
	}

	return Row{
		Deal:           deal.Name,
		Value:          deal.Amount,
		DealStage:      deal.Stage,
		DealOwner:      owners.Resolve(ctx, deal.OwnerID),
		ExpirationDate: FormatDate(deal.CloseDate),
		CreatedAtDate:  FormatDate(deal.CreateDate),
		CustomerName:   customer,
		CompanyName:    company,
	}
}
