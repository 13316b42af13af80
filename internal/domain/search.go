package domain

import (
	"fmt"
	"regexp"
	"time"
)

// TopN bounds for the destination shortlist.
const (
	MinTopN = 3
	MaxTopN = 20
)

// MaxAdults is the upstream ceiling on travelers per search.
const MaxAdults = 9

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// currencyRegex matches ISO 4217 currency codes.
var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SearchRequest defines the parameters for an "anywhere" fare search from a
// single origin. Origin is the only field without a server-side default.
type SearchRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "YVR")
	Origin string `json:"origin"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format.
	// Empty means "about a month from now" (filled by ApplyDefaults).
	DepartureDate string `json:"departure_date,omitempty"`

	// ReturnDate is the desired return date in YYYY-MM-DD format.
	// Empty means one-way.
	ReturnDate string `json:"return_date,omitempty"`

	// Cabins is the set of cabin classes to price. Duplicates are collapsed.
	Cabins []CabinClass `json:"cabins"`

	// Adults is the number of adult travelers (1-9).
	Adults int `json:"adults"`

	// Currency is the ISO 4217 code prices are requested in.
	Currency string `json:"currency"`

	// TopN caps how many discovered destinations are priced (3-20).
	TopN int `json:"top_n"`

	// NonstopOnly restricts offers to direct flights.
	NonstopOnly bool `json:"nonstop_only"`

	// MaxPrice caps the advisory price during discovery. Zero means no cap.
	MaxPrice int `json:"max_price,omitempty"`

	// Regions selects curated hub destinations instead of upstream discovery.
	Regions []string `json:"regions,omitempty"`
}

// SearchDefaults carries the configured fallback values applied to a request
// before validation. CurrencyForOrigin maps an origin airport to its local
// currency; it may be nil, in which case USD is used.
type SearchDefaults struct {
	Origin            string
	Cabins            []CabinClass
	TopN              int
	CurrencyForOrigin func(origin string) string
}

// ApplyDefaults fills empty optional fields. The caller supplies "now" so the
// default departure date (30 days out) stays testable.
func (r *SearchRequest) ApplyDefaults(now time.Time, defaults SearchDefaults) {
	if r.Origin == "" {
		r.Origin = defaults.Origin
	}
	if len(r.Cabins) == 0 {
		r.Cabins = append([]CabinClass(nil), defaults.Cabins...)
	}
	r.Cabins = NormalizeCabins(r.Cabins)
	if r.DepartureDate == "" {
		r.DepartureDate = now.UTC().AddDate(0, 0, 30).Format(DateLayout)
	}
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
	if r.TopN == 0 {
		r.TopN = defaults.TopN
	}
}

// Validate checks the request after defaults have been applied.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (r *SearchRequest) Validate() error {
	if r.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidRequest)
	}
	if !airportCodeRegex.MatchString(r.Origin) {
		return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, r.Origin)
	}

	if len(r.Cabins) == 0 {
		return fmt.Errorf("%w: at least one cabin class is required", ErrInvalidRequest)
	}
	for _, c := range r.Cabins {
		if !c.IsValid() {
			return fmt.Errorf("%w: unsupported cabin class %q", ErrInvalidRequest, string(c))
		}
	}

	departure, err := validateDate("departure_date", r.DepartureDate, true)
	if err != nil {
		return err
	}
	if r.ReturnDate != "" {
		ret, err := validateDate("return_date", r.ReturnDate, false)
		if err != nil {
			return err
		}
		if ret.Before(departure) {
			return fmt.Errorf("%w: return_date must not be before departure_date", ErrInvalidRequest)
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

	if r.TopN < MinTopN || r.TopN > MaxTopN {
		return fmt.Errorf("%w: top_n must be between %d and %d, got %d", ErrInvalidRequest, MinTopN, MaxTopN, r.TopN)
	}

	if r.MaxPrice < 0 {
		return fmt.Errorf("%w: max_price must not be negative", ErrInvalidRequest)
	}

	return nil
}

// validateDate checks format and parses a YYYY-MM-DD date field.
func validateDate(field, value string, required bool) (time.Time, error) {
	if value == "" {
		if required {
			return time.Time{}, fmt.Errorf("%w: %s is required", ErrInvalidRequest, field)
		}
		return time.Time{}, nil
	}
	if !dateRegex.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: %s must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, field, value)
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s is not a valid date: %s", ErrInvalidRequest, field, value)
	}
	return t, nil
}
