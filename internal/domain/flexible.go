package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Flexible search bounds.
const (
	MinTripLengthDays       = 1
	MaxTripLengthDays       = 30
	MaxFlexibleDestinations = 10
)

// monthRegex matches months in YYYY-MM format.
var monthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

// sampleDaysOfMonth are the departure days sampled within the requested
// month. Four probes per month keeps the call count predictable.
var sampleDaysOfMonth = []int{1, 8, 15, 22}

// FlexibleSearchRequest asks "when in this month is it cheapest to fly to
// these destinations", sampling a handful of departure dates per destination.
type FlexibleSearchRequest struct {
	// Origin is the IATA code of the departure airport
	Origin string `json:"origin"`

	// Month is the travel month in YYYY-MM format
	Month string `json:"month"`

	// TripLengthDays sets the return date relative to each sampled departure
	TripLengthDays int `json:"trip_length_days"`

	// Destinations is the explicit list of IATA codes to check (1-10)
	Destinations []string `json:"destinations"`

	// Cabins is the set of cabin classes to price
	Cabins []CabinClass `json:"cabins"`

	// Adults is the number of adult travelers (1-9)
	Adults int `json:"adults"`

	// Currency is the ISO 4217 code prices are requested in
	Currency string `json:"currency"`

	// NonstopOnly restricts offers to direct flights
	NonstopOnly bool `json:"nonstop_only"`

	// MaxPrice caps offer prices. Zero means no cap.
	MaxPrice int `json:"max_price,omitempty"`
}

// ApplyDefaults fills empty optional fields from the configured defaults.
func (r *FlexibleSearchRequest) ApplyDefaults(defaults SearchDefaults) {
	if r.Origin == "" {
		r.Origin = defaults.Origin
	}
	if len(r.Cabins) == 0 {
		r.Cabins = append([]CabinClass(nil), defaults.Cabins...)
	}
	r.Cabins = NormalizeCabins(r.Cabins)
	if r.Adults == 0 {
		r.Adults = 1
	}
	if r.Currency == "" {
		if defaults.CurrencyForOrigin != nil {
			r.Currency = defaults.CurrencyForOrigin(r.Origin)
		} else {
			r.Currency = "USD"
		}
	}
}

// Validate checks the request after defaults have been applied. The month
// must still contain at least one future sample date relative to now.
func (r *FlexibleSearchRequest) Validate(now time.Time) error {
	if !airportCodeRegex.MatchString(r.Origin) {
		return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, r.Origin)
	}
	if !monthRegex.MatchString(r.Month) {
		return fmt.Errorf("%w: month must be in YYYY-MM format, got %q", ErrInvalidRequest, r.Month)
	}
	if _, err := time.Parse("2006-01", r.Month); err != nil {
		return fmt.Errorf("%w: month is not a valid month: %s", ErrInvalidRequest, r.Month)
	}
	if len(r.SampleDates(now)) == 0 {
		return fmt.Errorf("%w: month %s has no remaining departure dates", ErrInvalidRequest, r.Month)
	}
	if r.TripLengthDays < MinTripLengthDays || r.TripLengthDays > MaxTripLengthDays {
		return fmt.Errorf("%w: trip_length_days must be between %d and %d, got %d",
			ErrInvalidRequest, MinTripLengthDays, MaxTripLengthDays, r.TripLengthDays)
	}
	if len(r.Destinations) == 0 {
		return fmt.Errorf("%w: at least one destination is required", ErrInvalidRequest)
	}
	if len(r.Destinations) > MaxFlexibleDestinations {
		return fmt.Errorf("%w: at most %d destinations are allowed, got %d",
			ErrInvalidRequest, MaxFlexibleDestinations, len(r.Destinations))
	}
	for _, dest := range r.Destinations {
		if !airportCodeRegex.MatchString(dest) {
			return fmt.Errorf("%w: destination must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, dest)
		}
	}
	if len(r.Cabins) == 0 {
		return fmt.Errorf("%w: at least one cabin class is required", ErrInvalidRequest)
	}
	for _, c := range r.Cabins {
		if !c.IsValid() {
			return fmt.Errorf("%w: unsupported cabin class %q", ErrInvalidRequest, string(c))
		}
	}
	if r.Adults < 1 {
		return fmt.Errorf("%w: adults must be at least 1", ErrInvalidRequest)
	}
	if r.Adults > MaxAdults {
		return fmt.Errorf("%w: adults cannot exceed %d", ErrInvalidRequest, MaxAdults)
	}
	if !currencyRegex.MatchString(r.Currency) {
		return fmt.Errorf("%w: currency must be a valid ISO 4217 code, got %q", ErrInvalidRequest, r.Currency)
	}
	if r.MaxPrice < 0 {
		return fmt.Errorf("%w: max_price must not be negative", ErrInvalidRequest)
	}
	return nil
}

// SampleDates returns the sampled departure dates within the month that are
// still in the future, in YYYY-MM-DD format. The month is assumed to have
// passed Validate's format check; a malformed month yields nil.
func (r *FlexibleSearchRequest) SampleDates(now time.Time) []string {
	monthStart, err := time.Parse("2006-01", r.Month)
	if err != nil {
		return nil
	}
	today := now.UTC().Truncate(24 * time.Hour)

	var dates []string
	for _, day := range sampleDaysOfMonth {
		d := monthStart.AddDate(0, 0, day-1)
		if d.Month() != monthStart.Month() {
			continue
		}
		if d.After(today) {
			dates = append(dates, d.Format(DateLayout))
		}
	}
	return dates
}

// FlexibleFare is the cheapest fare found for one (cabin, destination) pair
// across the sampled departure dates.
type FlexibleFare struct {
	// Destination is the IATA code the fare applies to
	Destination string `json:"destination"`

	// Offer is the cheapest offer found across all sampled dates
	Offer FlightOffer `json:"offer"`

	// BestDate is the departure date the cheapest fare was found on
	BestDate string `json:"best_date"`

	// MaxPriceFound is the highest price observed across sampled dates
	MaxPriceFound float64 `json:"max_price_found"`

	// Savings is MaxPriceFound minus the best price
	Savings float64 `json:"savings"`

	// DatesChecked counts the sampled dates that returned offers
	DatesChecked int `json:"dates_checked"`
}

// FlexibleSearchResult is the outcome of a flexible-date search.
type FlexibleSearchResult struct {
	// Request echoes the effective (defaulted) search parameters
	Request FlexibleSearchRequest `json:"request"`

	// Fares lists per-cabin fares sorted ascending by best price
	Fares map[CabinClass][]FlexibleFare `json:"fares"`

	// SampleDates lists the departure dates that were probed
	SampleDates []string `json:"sample_dates"`

	// AirlineNames maps carrier codes to display names
	AirlineNames map[string]string `json:"airline_names,omitempty"`

	// Metadata records how the search executed
	Metadata SearchMetadata `json:"metadata"`
}

// CachedFlexible is the cache value for a flexible-date search.
type CachedFlexible struct {
	Fares        map[CabinClass][]FlexibleFare `json:"fares"`
	SampleDates  []string                      `json:"sample_dates"`
	AirlineNames map[string]string             `json:"airline_names,omitempty"`
}
