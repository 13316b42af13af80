// Package http provides swagger type definitions for API documentation.
// These types mirror the response DTOs but are defined here to help swag
// generate proper documentation.
package http

// SwaggerSearchResponse represents the anywhere-search response for swagger documentation.
// @Description Fare search results grouped by cabin class
type SwaggerSearchResponse struct {
	// SearchCriteria echoes the effective search parameters after defaulting
	SearchCriteria SwaggerSearchCriteria `json:"search_criteria"`

	// Metadata contains information about the search execution
	Metadata SwaggerSearchMetadata `json:"metadata"`

	// Results maps lowercase cabin class to ranked offers, cheapest first
	Results map[string][]SwaggerOffer `json:"results"`

	// Upgrades lists economy-to-business comparisons, best value first
	Upgrades []SwaggerUpgrade `json:"upgrades"`
}

// SwaggerSearchCriteria echoes the effective search parameters.
// @Description Effective search parameters after server-side defaulting
type SwaggerSearchCriteria struct {
	// Origin is the IATA code of the departure airport
	Origin string `json:"origin" example:"YVR"`

	// OriginCity is the display name of the origin city
	OriginCity string `json:"origin_city,omitempty" example:"Vancouver"`

	// DepartureDate is the effective departure date
	DepartureDate string `json:"departure_date" example:"2026-10-15"`

	// ReturnDate is the effective return date, empty for one-way
	ReturnDate string `json:"return_date,omitempty" example:"2026-10-22"`

	// Cabins lists the priced cabin classes
	Cabins []string `json:"cabins" example:"ECONOMY,BUSINESS"`

	// Adults is the number of adult travelers
	Adults int `json:"adults" example:"1"`

	// Currency is the ISO 4217 code prices are quoted in
	Currency string `json:"currency" example:"CAD"`

	// TopN is the destination shortlist size
	TopN int `json:"top_n" example:"10"`

	// NonstopOnly restricts offers to direct flights
	NonstopOnly bool `json:"nonstop_only" example:"false"`
}

// SwaggerSearchMetadata contains metadata about the search execution.
// @Description Metadata about the search execution
type SwaggerSearchMetadata struct {
	// CandidatesFound is the number of destinations discovery produced
	CandidatesFound int `json:"candidates_found" example:"10"`

	// PairsPriced is the number of pricing calls that succeeded
	PairsPriced int `json:"pairs_priced" example:"18"`

	// PairsFailed is the number of pricing calls that failed or timed out
	PairsFailed int `json:"pairs_failed" example:"2"`

	// UpstreamCalls is the total number of provider calls the search consumed
	UpstreamCalls int `json:"upstream_calls" example:"32"`

	// SearchTimeMs is the total search duration in milliseconds
	SearchTimeMs int64 `json:"search_time_ms" example:"4250"`

	// CacheHit indicates whether the results came from cache
	CacheHit bool `json:"cache_hit" example:"false"`
}

// SwaggerOffer represents a single priced offer.
// @Description Live priced offer for one destination in one cabin
type SwaggerOffer struct {
	// Destination is the IATA code of the arrival airport
	Destination string `json:"destination" example:"NRT"`

	// City is the display name of the destination city
	City string `json:"city" example:"Tokyo"`

	// Price contains pricing information
	Price SwaggerPrice `json:"price"`

	// DepartureTime is the outbound departure timestamp
	DepartureTime string `json:"departure_time" example:"2026-10-15T08:30:00Z"`

	// ReturnTime is the inbound departure timestamp, empty for one-way
	ReturnTime string `json:"return_time,omitempty" example:"2026-10-22T10:00:00Z"`

	// Airlines lists the operating carriers with display names
	Airlines []SwaggerAirline `json:"airlines"`

	// Stops is the number of outbound stops (0 = direct)
	Stops int `json:"stops" example:"0"`

	// Duration contains the total outbound duration
	Duration SwaggerDuration `json:"duration"`

	// DealLabel grades the price against historical quartiles
	DealLabel string `json:"deal_label" example:"Good Price"`

	// GoogleFlightsURL is a deep link to book the fare
	GoogleFlightsURL string `json:"google_flights_url" example:"https://www.google.com/travel/flights?q=Flights+to+NRT+from+YVR+on+2026-10-15+economy+class"`
}

// SwaggerAirline contains information about an airline.
// @Description Airline information
type SwaggerAirline struct {
	// Code is the IATA airline code
	Code string `json:"code" example:"AC"`

	// Name is the airline display name
	Name string `json:"name" example:"Air Canada"`
}

// SwaggerPrice contains pricing information.
// @Description Price information
type SwaggerPrice struct {
	// Amount is the price value
	Amount float64 `json:"amount" example:"880"`

	// Currency is the ISO 4217 currency code
	Currency string `json:"currency" example:"CAD"`
}

// SwaggerDuration contains flight duration information.
// @Description Flight duration information
type SwaggerDuration struct {
	// TotalMinutes is the total flight duration in minutes
	TotalMinutes int `json:"total_minutes" example:"555"`

	// Formatted is a human-readable duration string
	Formatted string `json:"formatted" example:"9h 15m"`
}

// SwaggerUpgrade reports the cost of moving up from economy.
// @Description Economy-to-business price comparison for one destination
type SwaggerUpgrade struct {
	// Destination is the IATA code the comparison applies to
	Destination string `json:"destination" example:"NRT"`

	// City is the display name of the destination city
	City string `json:"city" example:"Tokyo"`

	// EconomyPrice is the cheapest economy price found
	EconomyPrice float64 `json:"economy_price" example:"880"`

	// BusinessPrice is the cheapest business price found
	BusinessPrice float64 `json:"business_price" example:"3310"`

	// Premium is the absolute price difference
	Premium float64 `json:"premium" example:"2430"`

	// Multiplier is business price over economy price
	Multiplier float64 `json:"multiplier" example:"3.76"`
}

// SwaggerLimitsResponse reports rate-limit state for the calling identity.
// @Description Rate-limit status per admission scope
type SwaggerLimitsResponse struct {
	// Limits lists each admission scope's state
	Limits []SwaggerScopeStatus `json:"limits"`
}

// SwaggerScopeStatus is one admission scope's state.
// @Description One admission scope's limit, usage, and reset time
type SwaggerScopeStatus struct {
	// Scope is the admission scope: session, ip, or monthly
	Scope string `json:"scope" example:"session"`

	// Limit is the configured ceiling for the scope
	Limit int `json:"limit" example:"20"`

	// Remaining is how many requests the scope still accepts
	Remaining int `json:"remaining" example:"17"`

	// ResetAt is when the window rolls over
	ResetAt string `json:"reset_at" example:"2026-09-01T00:00:00Z"`
}

// SwaggerErrorResponse represents an error response.
// @Description Error response from the API
type SwaggerErrorResponse struct {
	// Code is a machine-readable error code
	Code string `json:"code" example:"validation_error"`

	// Message is a human-readable error message
	Message string `json:"message" example:"Request validation failed"`

	// Details contains field-specific error details
	Details map[string]string `json:"details,omitempty"`
}
