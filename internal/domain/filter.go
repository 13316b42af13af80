package domain

import "strings"

// FilterOptions holds optional post-pricing filters. Nil or empty fields
// mean "no filtering on that criterion". Filters run before dedup and
// ranking so a filtered-out cheapest offer lets the next one survive.
type FilterOptions struct {
	// MaxStops keeps offers with at most this many stops (0 = direct only)
	MaxStops *int `json:"max_stops,omitempty"`

	// Carriers keeps offers whose first carrier is in this list (case-insensitive)
	Carriers []string `json:"carriers,omitempty"`

	// MaxDurationMinutes keeps offers at or under this total duration
	MaxDurationMinutes *int `json:"max_duration_minutes,omitempty"`
}

// MatchesOffer reports whether the offer passes all configured filters.
func (f *FilterOptions) MatchesOffer(offer FlightOffer) bool {
	if f == nil {
		return true
	}
	if f.MaxStops != nil && offer.Stops > *f.MaxStops {
		return false
	}
	if f.MaxDurationMinutes != nil && offer.Duration.TotalMinutes > *f.MaxDurationMinutes {
		return false
	}
	if len(f.Carriers) > 0 && !carrierAllowed(offer.Carriers, f.Carriers) {
		return false
	}
	return true
}

// carrierAllowed checks whether any of the offer's carriers is in the
// allowed list, case-insensitively.
func carrierAllowed(offerCarriers, allowed []string) bool {
	for _, want := range allowed {
		for _, have := range offerCarriers {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}
