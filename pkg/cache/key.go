package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key represents a unique identifier for a cached HubSpot response.
type Key struct {
	// Endpoint is the API path (e.g. "/crm/v3/owners/")
	Endpoint string

	// QueryParams are the request query parameters (e.g. {"archived": "false"})
	QueryParams url.Values
}

// String generates a deterministic cache key string.
// Format: hubspot:endpoint:query1=val1:query2=val2
//
// Example:
//
//	hubspot:crm/v3/owners:archived=false
func (k Key) String() string {
	parts := []string{"hubspot"}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Query params sorted for determinism
	if len(k.QueryParams) > 0 {
		queryKeys := make([]string, 0, len(k.QueryParams))
		for key := range k.QueryParams {
			queryKeys = append(queryKeys, key)
		}
		sort.Strings(queryKeys)

		for _, key := range queryKeys {
			for _, val := range k.QueryParams[key] {
				parts = append(parts, fmt.Sprintf("%s=%s", key, val))
			}
		}
	}

	return strings.Join(parts, ":")
}
