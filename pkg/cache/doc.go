// Package cache provides an optional Redis-backed response cache for
// idempotent HubSpot GET endpoints.
//
// The cache is read-through with a fixed TTL: association listings and the
// owner directory change rarely within an export window, so re-running a
// report shortly after an export can skip most of the O(deals) association
// calls. Caching is opt-in; a client constructed without a Redis connection
// never touches this package.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.Key{
//		Endpoint:    "/crm/v3/owners/",
//		QueryParams: url.Values{"archived": []string{"false"}},
//	}
//
//	entry, err := manager.Get(ctx, key)
//	if err == cache.ErrCacheMiss {
//		// fetch from the API, then:
//		_ = manager.Set(ctx, key, cache.NewEntry(body, 200, 5*time.Minute))
//	}
//
// # Metrics
//
// The cache manager exports Prometheus metrics:
//
//   - hubspot_cache_hits_total{layer="redis"} - Cache hits
//   - hubspot_cache_misses_total - Cache misses
//   - hubspot_cache_errors_total{operation} - Cache operation errors
package cache
