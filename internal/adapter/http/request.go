// Package http provides the HTTP handler layer for the fare discovery API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/refdata"
)

// SearchAnywhereRequest represents the request body for an anywhere search.
// Every field except filters has a server-side default, so an empty body is
// a valid request.
type SearchAnywhereRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "YVR")
	Origin string `json:"origin,omitempty"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format
	DepartureDate string `json:"departure_date,omitempty"`

	// ReturnDate is the desired return date in YYYY-MM-DD format (empty = one-way)
	ReturnDate string `json:"return_date,omitempty"`

	// Cabins is the list of cabin classes to price: ECONOMY, BUSINESS, FIRST
	Cabins []string `json:"cabins,omitempty"`

	// Adults is the number of adult travelers (1-9)
	Adults int `json:"adults,omitempty"`

	// Currency is the ISO 4217 code prices are requested in
	Currency string `json:"currency,omitempty"`

	// TopN caps how many discovered destinations are priced (3-20)
	TopN int `json:"top_n,omitempty"`

	// NonstopOnly restricts offers to direct flights
	NonstopOnly bool `json:"nonstop_only,omitempty"`

	// MaxPrice caps the advisory price during discovery
	MaxPrice int `json:"max_price,omitempty"`

	// Regions selects curated hub destinations instead of upstream discovery
	Regions []string `json:"regions,omitempty"`

	// Filters contains optional post-pricing filters
	Filters *FilterDTO `json:"filters,omitempty"`
}

// FlexibleRequest represents the request body for a flexible-date search.
// Example: {"month": "2026-10", "trip_length_days": 7, "destinations": ["NRT", "LHR"]}
type FlexibleRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "YVR")
	Origin string `json:"origin,omitempty"`

	// Month is the travel month in YYYY-MM format
	Month string `json:"month"`

	// TripLengthDays sets the return date relative to each sampled departure
	TripLengthDays int `json:"trip_length_days"`

	// Destinations is the explicit list of IATA codes to check (1-10)
	Destinations []string `json:"destinations"`

	// Cabins is the list of cabin classes to price: ECONOMY, BUSINESS, FIRST
	Cabins []string `json:"cabins,omitempty"`

	// Adults is the number of adult travelers (1-9)
	Adults int `json:"adults,omitempty"`

	// Currency is the ISO 4217 code prices are requested in
	Currency string `json:"currency,omitempty"`

	// NonstopOnly restricts offers to direct flights
	NonstopOnly bool `json:"nonstop_only,omitempty"`

	// MaxPrice caps offer prices
	MaxPrice int `json:"max_price,omitempty"`
}

// FilterDTO represents optional post-pricing filters.
// Example: {"max_stops": 0, "carriers": ["AC", "NH"], "max_duration_minutes": 720}
type FilterDTO struct {
	// MaxStops keeps offers with at most this many stops (0 = direct only)
	MaxStops *int `json:"max_stops,omitempty" example:"0"`

	// Carriers keeps offers operated by these airline codes
	Carriers []string `json:"carriers,omitempty" example:"AC,NH"`

	// MaxDurationMinutes keeps offers at or under this total duration
	MaxDurationMinutes *int `json:"max_duration_minutes,omitempty" example:"720"`
}

// Validation regex patterns.
var (
	airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	currencyPattern    = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthPattern       = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// knownRegions is the set of region names a search may target.
var knownRegions = func() map[string]bool {
	set := make(map[string]bool)
	for _, region := range refdata.Regions() {
		set[region] = true
	}
	return set
}()

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate checks the request's explicit fields and normalizes codes to
// uppercase. Defaulting and the cross-field checks happen in the domain
// layer after defaults are applied.
func (r *SearchAnywhereRequest) Validate() error {
	errs := &ValidationErrors{}

	validateAirportCode(errs, "origin", &r.Origin, false)
	validateDate(errs, "departure_date", r.DepartureDate)
	validateDate(errs, "return_date", r.ReturnDate)
	validateCabins(errs, r.Cabins)
	validateAdults(errs, r.Adults)
	validateCurrency(errs, &r.Currency)
	r.validateTopN(errs)
	validateMaxPrice(errs, r.MaxPrice)
	r.validateRegions(errs)
	r.Filters.validate(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SearchAnywhereRequest) validateTopN(errs *ValidationErrors) {
	if r.TopN == 0 {
		return
	}
	if r.TopN < domain.MinTopN || r.TopN > domain.MaxTopN {
		errs.Add("top_n", fmt.Sprintf("top_n must be between %d and %d", domain.MinTopN, domain.MaxTopN))
	}
}

func (r *SearchAnywhereRequest) validateRegions(errs *ValidationErrors) {
	for i, region := range r.Regions {
		if !knownRegions[region] {
			errs.Add(fmt.Sprintf("regions[%d]", i),
				fmt.Sprintf("unknown region %q, valid regions: %s", region, strings.Join(refdata.Regions(), ", ")))
		}
	}
}

// Validate checks the request's explicit fields and normalizes codes to
// uppercase. Month freshness (future sample dates remaining) is checked in
// the domain layer, which knows the clock.
func (r *FlexibleRequest) Validate() error {
	errs := &ValidationErrors{}

	validateAirportCode(errs, "origin", &r.Origin, false)
	r.validateMonth(errs)
	r.validateTripLength(errs)
	r.validateDestinations(errs)
	validateCabins(errs, r.Cabins)
	validateAdults(errs, r.Adults)
	validateCurrency(errs, &r.Currency)
	validateMaxPrice(errs, r.MaxPrice)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *FlexibleRequest) validateMonth(errs *ValidationErrors) {
	if r.Month == "" {
		errs.Add("month", "month is required")
		return
	}
	if !monthPattern.MatchString(r.Month) {
		errs.Add("month", "month must be in YYYY-MM format")
		return
	}
	if _, err := time.Parse("2006-01", r.Month); err != nil {
		errs.Add("month", "month is not a valid month")
	}
}

func (r *FlexibleRequest) validateTripLength(errs *ValidationErrors) {
	if r.TripLengthDays < domain.MinTripLengthDays || r.TripLengthDays > domain.MaxTripLengthDays {
		errs.Add("trip_length_days", fmt.Sprintf("trip_length_days must be between %d and %d",
			domain.MinTripLengthDays, domain.MaxTripLengthDays))
	}
}

func (r *FlexibleRequest) validateDestinations(errs *ValidationErrors) {
	if len(r.Destinations) == 0 {
		errs.Add("destinations", "at least one destination is required")
		return
	}
	if len(r.Destinations) > domain.MaxFlexibleDestinations {
		errs.Add("destinations", fmt.Sprintf("at most %d destinations are allowed", domain.MaxFlexibleDestinations))
		return
	}
	for i := range r.Destinations {
		field := fmt.Sprintf("destinations[%d]", i)
		validateAirportCode(errs, field, &r.Destinations[i], true)
	}
}

// validate checks the optional filter block. A nil receiver is valid.
func (f *FilterDTO) validate(errs *ValidationErrors) {
	if f == nil {
		return
	}

	if f.MaxStops != nil && *f.MaxStops < 0 {
		errs.Add("filters.max_stops", "max_stops must be a non-negative number")
	}

	if f.MaxDurationMinutes != nil && *f.MaxDurationMinutes < 0 {
		errs.Add("filters.max_duration_minutes", "max_duration_minutes must be a non-negative number")
	}

	for i, carrier := range f.Carriers {
		normalized := strings.ToUpper(strings.TrimSpace(carrier))
		if len(normalized) < 2 || len(normalized) > 3 {
			errs.Add(fmt.Sprintf("filters.carriers[%d]", i),
				"carrier code must be 2 or 3 characters")
		}
		f.Carriers[i] = normalized
	}
}

// validateAirportCode checks and normalizes a 3-letter IATA code in place.
// Empty values are valid unless required, because defaults fill them later.
func validateAirportCode(errs *ValidationErrors, field string, code *string, required bool) {
	if *code == "" {
		if required {
			errs.Add(field, field+" is required")
		}
		return
	}

	normalized := strings.ToUpper(strings.TrimSpace(*code))
	if !airportCodePattern.MatchString(normalized) {
		errs.Add(field, field+" must be a valid 3-letter IATA airport code")
		return
	}
	*code = normalized
}

func validateDate(errs *ValidationErrors, field, value string) {
	if value == "" {
		return
	}
	if !datePattern.MatchString(value) {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return
	}
	if _, err := time.Parse(domain.DateLayout, value); err != nil {
		errs.Add(field, field+" is not a valid date")
	}
}

func validateCabins(errs *ValidationErrors, cabins []string) {
	for i, cabin := range cabins {
		if _, ok := domain.ParseCabin(cabin); !ok {
			errs.Add(fmt.Sprintf("cabins[%d]", i),
				"cabin must be one of: ECONOMY, BUSINESS, FIRST")
		}
	}
}

func validateAdults(errs *ValidationErrors, adults int) {
	if adults < 0 {
		errs.Add("adults", "adults must be at least 1")
		return
	}
	if adults > domain.MaxAdults {
		errs.Add("adults", fmt.Sprintf("adults cannot exceed %d", domain.MaxAdults))
	}
}

func validateCurrency(errs *ValidationErrors, currency *string) {
	if *currency == "" {
		return
	}

	normalized := strings.ToUpper(strings.TrimSpace(*currency))
	if !currencyPattern.MatchString(normalized) {
		errs.Add("currency", "currency must be a valid 3-letter ISO 4217 code")
		return
	}
	*currency = normalized
}

func validateMaxPrice(errs *ValidationErrors, maxPrice int) {
	if maxPrice < 0 {
		errs.Add("max_price", "max_price must be a non-negative number")
	}
}
