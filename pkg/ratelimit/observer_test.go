package ratelimit

import (
	"net/http"
	"testing"

	"github.com/rs/zerolog"
)

func TestObserveHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers http.Header
		want    State
		updated bool
	}{
		{
			name: "all headers present",
			headers: http.Header{
				"X-Hubspot-Ratelimit-Remaining":             []string{"87"},
				"X-Hubspot-Ratelimit-Daily-Remaining":       []string{"239000"},
				"X-Hubspot-Ratelimit-Interval-Milliseconds": []string{"10000"},
			},
			want:    State{Remaining: 87, DailyRemaining: 239000, IntervalMilliseconds: 10000},
			updated: true,
		},
		{
			name:    "no rate limit headers",
			headers: http.Header{"Content-Type": []string{"application/json"}},
			updated: false,
		},
		{
			name: "unparseable remaining",
			headers: http.Header{
				"X-Hubspot-Ratelimit-Remaining": []string{"lots"},
			},
			updated: false,
		},
		{
			name: "remaining only",
			headers: http.Header{
				"X-Hubspot-Ratelimit-Remaining": []string{"3"},
			},
			want:    State{Remaining: 3},
			updated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewObserver(zerolog.Nop())
			o.ObserveHeaders(tt.headers)

			state := o.State()
			if tt.updated {
				if state.LastUpdate.IsZero() {
					t.Fatal("LastUpdate not set after observation")
				}
				if state.Remaining != tt.want.Remaining {
					t.Errorf("Remaining = %d, want %d", state.Remaining, tt.want.Remaining)
				}
				if state.DailyRemaining != tt.want.DailyRemaining {
					t.Errorf("DailyRemaining = %d, want %d", state.DailyRemaining, tt.want.DailyRemaining)
				}
				if state.IntervalMilliseconds != tt.want.IntervalMilliseconds {
					t.Errorf("IntervalMilliseconds = %d, want %d", state.IntervalMilliseconds, tt.want.IntervalMilliseconds)
				}
			} else if !state.LastUpdate.IsZero() {
				t.Error("state should not update without a valid remaining header")
			}
		})
	}
}

func TestObserveHeaders_KeepsLastValues(t *testing.T) {
	o := NewObserver(zerolog.Nop())

	o.ObserveHeaders(http.Header{
		"X-Hubspot-Ratelimit-Remaining":       []string{"50"},
		"X-Hubspot-Ratelimit-Daily-Remaining": []string{"1000"},
	})
	o.ObserveHeaders(http.Header{
		"X-Hubspot-Ratelimit-Remaining": []string{"49"},
	})

	state := o.State()
	if state.Remaining != 49 {
		t.Errorf("Remaining = %d, want 49", state.Remaining)
	}
	// Daily value persists from the earlier observation.
	if state.DailyRemaining != 1000 {
		t.Errorf("DailyRemaining = %d, want 1000", state.DailyRemaining)
	}
}
