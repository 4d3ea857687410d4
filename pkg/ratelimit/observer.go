package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for rate limit observation.
var (
	hubspotRateLimitRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hubspot_rate_limit_remaining",
		Help: "Requests remaining in the current HubSpot rate limit interval",
	})

	hubspotRateLimitDailyRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hubspot_rate_limit_daily_remaining",
		Help: "Requests remaining in the current HubSpot daily rate limit window",
	})

	hubspotRateLimitWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hubspot_rate_limit_warnings_total",
		Help: "Total number of low rate limit budget warnings",
	})
)

// Observer tracks HubSpot rate limit headers across responses.
// All methods are safe for concurrent use.
type Observer struct {
	mu     sync.RWMutex
	state  State
	logger zerolog.Logger
}

// NewObserver creates a new rate limit observer.
func NewObserver(logger zerolog.Logger) *Observer {
	return &Observer{
		logger: logger,
	}
}

// ObserveHeaders parses HubSpot rate limit headers from a response and
// updates the observed state. Responses without rate limit headers are
// ignored (some endpoints do not carry them).
func (o *Observer) ObserveHeaders(headers http.Header) {
	remainStr := headers.Get("X-HubSpot-RateLimit-Remaining")
	if remainStr == "" {
		return
	}

	remaining, err := strconv.Atoi(remainStr)
	if err != nil {
		o.logger.Debug().
			Str("header", remainStr).
			Msg("Unparseable rate limit header, skipping update")
		return
	}

	o.mu.Lock()
	o.state.Remaining = remaining
	o.state.LastUpdate = time.Now()

	if dailyStr := headers.Get("X-HubSpot-RateLimit-Daily-Remaining"); dailyStr != "" {
		if daily, err := strconv.Atoi(dailyStr); err == nil {
			o.state.DailyRemaining = daily
		}
	}
	if intervalStr := headers.Get("X-HubSpot-RateLimit-Interval-Milliseconds"); intervalStr != "" {
		if interval, err := strconv.Atoi(intervalStr); err == nil {
			o.state.IntervalMilliseconds = interval
		}
	}
	state := o.state
	o.mu.Unlock()

	hubspotRateLimitRemaining.Set(float64(state.Remaining))
	hubspotRateLimitDailyRemaining.Set(float64(state.DailyRemaining))

	if state.NearLimit() {
		hubspotRateLimitWarningsTotal.Inc()
		o.logger.Warn().
			Int("remaining", state.Remaining).
			Int("daily_remaining", state.DailyRemaining).
			Msg("HubSpot rate limit budget running low")
	}
}

// State returns a copy of the most recently observed state.
func (o *Observer) State() State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}
