package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salesops/hubspot-export/pkg/mailer"
	"github.com/salesops/hubspot-export/pkg/report"
)

var (
	remindInput  string
	remindEmails string
	remindOnly   string
	remindDryRun bool
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send reminder e-mails for deals with missing fields",
	Long: `Remind reads a missing-deals CSV (as produced by report-missing) and a
JSON recipients file, matches rows to recipients by owner name, and sends
each recipient one reminder listing their deals that miss a value or a
company name.

SMTP settings come from SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASSWORD,
and SMTP_FROM. With --dry-run nothing is sent; the composed messages are
printed instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		missing, err := report.ReadMissingCSV(remindInput)
		if err != nil {
			return err
		}

		recipients, err := mailer.LoadRecipients(remindEmails)
		if err != nil {
			return err
		}
		if remindOnly != "" {
			target := strings.ToLower(strings.TrimSpace(remindOnly))
			var filtered []mailer.Recipient
			for _, r := range recipients {
				if strings.ToLower(r.Name) == target {
					filtered = append(filtered, r)
				}
			}
			recipients = filtered
		}
		if len(recipients) == 0 {
			return fmt.Errorf("no matching recipients")
		}

		var sender *mailer.Sender
		if !remindDryRun {
			port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
			sender, err = mailer.NewSender(mailer.SMTPConfig{
				Host:     os.Getenv("SMTP_HOST"),
				Port:     port,
				Username: os.Getenv("SMTP_USER"),
				Password: os.Getenv("SMTP_PASSWORD"),
				From:     os.Getenv("SMTP_FROM"),
			})
			if err != nil {
				return err
			}
		}

		for _, r := range recipients {
			rows := mailer.RowsForOwner(missing, r.Name)
			if len(rows) == 0 {
				fmt.Printf("No missing rows for %s. Skipping.\n", r.Name)
				continue
			}

			reminder, err := mailer.Compose(r.FirstName(), rows)
			if err != nil {
				return err
			}

			if remindDryRun {
				fmt.Printf("\n=== DRY RUN: Email to %s <%s> ===\n", r.Name, r.Email)
				fmt.Printf("Subject: %s\n", reminder.Subject)
				fmt.Println(reminder.HTML)
				continue
			}

			if err := sender.Send(r, reminder); err != nil {
				return err
			}
			fmt.Printf("Sent email to %s <%s>\n", r.Name, r.Email)
		}
		return nil
	},
}

func init() {
	remindCmd.Flags().StringVar(&remindInput, "input", "deals_missing.csv", "Missing-deals CSV path")
	remindCmd.Flags().StringVar(&remindEmails, "emails", "emails.json", "Recipients JSON path")
	remindCmd.Flags().StringVar(&remindOnly, "only", "", "Only send to this recipient name (case-insensitive)")
	remindCmd.Flags().BoolVar(&remindDryRun, "dry-run", false, "Print messages instead of sending")
}
