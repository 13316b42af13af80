package domain

import "time"

// DestinationCandidate is a cheap-destination suggestion produced by the
// discovery stage. Price is advisory only; zero means the upstream did not
// quote one (direct-destinations fallback).
type DestinationCandidate struct {
	// Destination is the IATA code of the suggested airport
	Destination string `json:"destination"`

	// Price is the advisory round-trip price from discovery, 0 if unknown
	Price float64 `json:"price,omitempty"`

	// DepartureDate is the suggested departure date in YYYY-MM-DD format
	DepartureDate string `json:"departure_date,omitempty"`

	// ReturnDate is the suggested return date in YYYY-MM-DD format
	ReturnDate string `json:"return_date,omitempty"`
}

// FlightOffer is a live, priced itinerary for one destination in one cabin.
// Offers are read-only once produced by the pricing stage.
type FlightOffer struct {
	// Destination is the IATA code of the final outbound arrival airport
	Destination string `json:"destination"`

	// Price is the total price for all travelers
	Price PriceInfo `json:"price"`

	// DepartureTime is the outbound departure timestamp
	DepartureTime time.Time `json:"departure_time"`

	// ReturnTime is the inbound departure timestamp; zero for one-way offers
	ReturnTime time.Time `json:"return_time,omitempty"`

	// Carriers lists the outbound carrier codes in segment order, deduplicated
	Carriers []string `json:"carriers"`

	// Stops is the number of outbound stops (0 = direct)
	Stops int `json:"stops"`

	// Duration is the total outbound duration
	Duration DurationInfo `json:"duration"`
}

// OneWay reports whether the offer has no return leg.
func (o *FlightOffer) OneWay() bool {
	return o.ReturnTime.IsZero()
}

// PriceInfo is a currency-tagged amount.
type PriceInfo struct {
	// Amount is the numeric price value
	Amount float64 `json:"amount"`

	// Currency is the ISO 4217 currency code (e.g., "CAD", "USD")
	Currency string `json:"currency"`
}

// DurationInfo contains flight duration information.
type DurationInfo struct {
	// TotalMinutes is the total duration in minutes
	TotalMinutes int `json:"total_minutes"`

	// Formatted is a human-readable duration string (e.g., "2h 30m")
	Formatted string `json:"formatted"`
}

// NewDurationInfo creates a DurationInfo from total minutes and formats it.
func NewDurationInfo(totalMinutes int) DurationInfo {
	hours := totalMinutes / 60
	mins := totalMinutes % 60

	var formatted string
	switch {
	case hours > 0 && mins > 0:
		formatted = intToString(hours) + "h " + intToString(mins) + "m"
	case hours > 0:
		formatted = intToString(hours) + "h"
	default:
		formatted = intToString(mins) + "m"
	}

	return DurationInfo{
		TotalMinutes: totalMinutes,
		Formatted:    formatted,
	}
}

// intToString converts a non-negative integer to a string without strconv.
func intToString(n int) string {
	if n == 0 {
		return "0"
	}

	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
