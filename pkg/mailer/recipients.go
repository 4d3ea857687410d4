// Package mailer composes and delivers reminder e-mails to deal owners
// whose exported rows are missing values.
package mailer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Recipient is one addressable deal owner.
type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoadRecipients reads a JSON array of recipients from a file. Entries
// without both a name and an e-mail address are skipped.
func LoadRecipients(path string) ([]Recipient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipients file: %w", err)
	}

	var raw []Recipient
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse recipients file: %w", err)
	}

	recipients := make([]Recipient, 0, len(raw))
	for _, r := range raw {
		name := strings.TrimSpace(r.Name)
		email := strings.TrimSpace(r.Email)
		if name == "" || email == "" {
			continue
		}
		recipients = append(recipients, Recipient{Name: name, Email: email})
	}
	return recipients, nil
}

// FirstName returns the recipient's first name for salutations.
func (r Recipient) FirstName() string {
	if i := strings.IndexByte(r.Name, ' '); i > 0 {
		return r.Name[:i]
	}
	return r.Name
}
