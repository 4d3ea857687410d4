package hubspot

import (
	"github.com/rs/zerolog"

	"github.com/salesops/hubspot-export/pkg/client"
	"github.com/salesops/hubspot-export/pkg/logging"
)

// API wraps the transport client with typed CRM endpoints.
type API struct {
	client *client.Client
	logger zerolog.Logger
}

// NewAPI creates the typed CRM API surface on top of a transport client.
func NewAPI(c *client.Client) *API {
	return &API{
		client: c,
		logger: logging.NewLogger("hubspot-api"),
	}
}
