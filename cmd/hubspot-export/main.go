package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/salesops/hubspot-export/pkg/client"
	"github.com/salesops/hubspot-export/pkg/logging"
)

// Global flags.
var (
	token    string
	redisURL string
	logLevel string
	pretty   bool
)

var rootCmd = &cobra.Command{
	Use:   "hubspot-export",
	Short: "Export and enrich HubSpot deals",
	Long: `hubspot-export pulls year-to-date open deals from HubSpot, enriches
them with associated contacts, companies, and owner names, and writes a
flat CSV record set. Companion subcommands aggregate the export per owner,
flag rows with missing fields, and send reminder e-mails to deal owners.

Authentication uses a HubSpot private app token from the HUBSPOT_TOKEN
environment variable or the --token flag.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logging.Config{
			Level:  logging.LogLevel(logLevel),
			Pretty: pretty,
			Output: os.Stderr,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("HUBSPOT_TOKEN"), "HubSpot private app token (default $HUBSPOT_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&redisURL, "redis", os.Getenv("REDIS_URL"), "Redis address for the optional response cache (default $REDIS_URL, empty disables caching)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Human-readable console log output")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reportOwnersCmd)
	rootCmd.AddCommand(reportMissingCmd)
	rootCmd.AddCommand(remindCmd)
}

// buildClient constructs the transport client from the global flags.
// A missing token surfaces as client.ErrMissingToken before any network
// call is made.
func buildClient() (*client.Client, error) {
	cfg := client.DefaultConfig(token)
	if redisURL != "" {
		cfg.Redis = redis.NewClient(&redis.Options{
			Addr: redisURL,
		})
	}
	return client.New(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, client.ErrMissingToken) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
