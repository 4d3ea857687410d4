package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/salesops/hubspot-export/pkg/report"
)

// Reminder is a composed message ready for delivery.
type Reminder struct {
	Subject string
	HTML    string
}

var reminderTemplate = template.Must(template.New("reminder").Parse(`<p>Hi {{.FirstName}},</p>
<p>We are tidying up our HubSpot data and a few of your deals are missing a value or a company name. Could you fill in the blanks when you have a minute?</p>
<ul>
{{- range .Deals}}
<li><strong>{{.Name}}</strong> | company: {{.Company}} | value: {{.Value}} | missing: {{.Missing}}</li>
{{- end}}
</ul>
<p>Thanks for keeping the pipeline clean!</p>`))

type reminderDeal struct {
	Name    string
	Company string
	Value   string
	Missing string
}

type reminderData struct {
	FirstName string
	Deals     []reminderDeal
}

// Compose renders the reminder for one recipient from their missing rows.
func Compose(firstName string, rows []report.MissingRow) (Reminder, error) {
	data := reminderData{
		FirstName: firstName,
		Deals:     make([]reminderDeal, 0, len(rows)),
	}
	for _, m := range rows {
		deal := m.Row.Deal
		if deal == "" {
			deal = "(unnamed deal)"
		}
		company := m.Row.CompanyName
		if company == "" {
			company = "(missing company_name)"
		}
		value := m.Row.Value
		if value == "" {
			value = "(missing value)"
		}
		missing := strings.Join(m.MissingFields, ", ")
		if missing == "" {
			missing = "value or company_name"
		}
		data.Deals = append(data.Deals, reminderDeal{
			Name:    deal,
			Company: company,
			Value:   value,
			Missing: missing,
		})
	}

	var buf bytes.Buffer
	if err := reminderTemplate.Execute(&buf, data); err != nil {
		return Reminder{}, fmt.Errorf("render reminder: %w", err)
	}

	return Reminder{
		Subject: fmt.Sprintf("%s, quick HubSpot tidy-up: a couple of fields missing", firstName),
		HTML:    buf.String(),
	}, nil
}

// RowsForOwner filters missing rows down to one owner. The owner matches
// when the target name is contained in the row's owner string or when the
// owner starts with the target's first name (case-insensitive). Only rows
// actually missing value or company_name are kept.
func RowsForOwner(rows []report.MissingRow, ownerName string) []report.MissingRow {
	target := strings.ToLower(strings.TrimSpace(ownerName))
	if target == "" {
		return nil
	}
	targetFirst, _, _ := strings.Cut(target, " ")

	var matched []report.MissingRow
	for _, m := range rows {
		owner := strings.ToLower(strings.TrimSpace(m.Row.DealOwner))
		if !strings.Contains(owner, target) && !(targetFirst != "" && strings.HasPrefix(owner, targetFirst)) {
			continue
		}
		relevant := false
		for _, field := range m.MissingFields {
			if field == "value" || field == "company_name" {
				relevant = true
				break
			}
		}
		if relevant {
			matched = append(matched, m)
		}
	}
	return matched
}
