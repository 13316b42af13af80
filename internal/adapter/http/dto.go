package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/ratelimit"
	"github.com/farescout/fare-discovery-engine/internal/refdata"
)

// googleFlightsURLFormat is the deep-link template for handing a found fare
// off to Google Flights: destination, origin, date, lowercase cabin.
const googleFlightsURLFormat = "https://www.google.com/travel/flights?q=Flights+to+%s+from+%s+on+%s+%s+class"

// SearchResponseDTO is the data transfer object for anywhere-search
// responses. It matches the expected API output format with snake_case fields.
type SearchResponseDTO struct {
	SearchCriteria SearchCriteriaDTO     `json:"search_criteria"`
	Metadata       MetadataDTO           `json:"metadata"`
	Results        map[string][]OfferDTO `json:"results"`
	Upgrades       []UpgradeDTO          `json:"upgrades"`
}

// SearchCriteriaDTO echoes the effective search parameters after defaulting.
type SearchCriteriaDTO struct {
	Origin        string   `json:"origin"`
	OriginCity    string   `json:"origin_city,omitempty"`
	DepartureDate string   `json:"departure_date"`
	ReturnDate    string   `json:"return_date,omitempty"`
	Cabins        []string `json:"cabins"`
	Adults        int      `json:"adults"`
	Currency      string   `json:"currency"`
	TopN          int      `json:"top_n"`
	NonstopOnly   bool     `json:"nonstop_only"`
	Regions       []string `json:"regions,omitempty"`
}

// MetadataDTO contains metadata about the search execution.
type MetadataDTO struct {
	CandidatesFound int   `json:"candidates_found"`
	PairsPriced     int   `json:"pairs_priced"`
	PairsFailed     int   `json:"pairs_failed"`
	UpstreamCalls   int   `json:"upstream_calls"`
	SearchTimeMs    int64 `json:"search_time_ms"`
	CacheHit        bool  `json:"cache_hit"`
}

// OfferDTO is the data transfer object for a single priced offer.
type OfferDTO struct {
	Destination      string       `json:"destination"`
	City             string       `json:"city"`
	Price            PriceDTO     `json:"price"`
	DepartureTime    string       `json:"departure_time"`
	ReturnTime       string       `json:"return_time,omitempty"`
	Airlines         []AirlineDTO `json:"airlines"`
	Stops            int          `json:"stops"`
	Duration         DurationDTO  `json:"duration"`
	DealLabel        string       `json:"deal_label"`
	GoogleFlightsURL string       `json:"google_flights_url"`
}

// AirlineDTO represents airline information.
type AirlineDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// PriceDTO represents price information.
type PriceDTO struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// DurationDTO represents flight duration.
type DurationDTO struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

// UpgradeDTO reports the cost of moving up from economy for one destination.
type UpgradeDTO struct {
	Destination   string  `json:"destination"`
	City          string  `json:"city"`
	EconomyPrice  float64 `json:"economy_price"`
	BusinessPrice float64 `json:"business_price"`
	Premium       float64 `json:"premium"`
	Multiplier    float64 `json:"multiplier"`
}

// FlexibleResponseDTO is the data transfer object for flexible-date search
// responses.
type FlexibleResponseDTO struct {
	SearchCriteria FlexibleCriteriaDTO          `json:"search_criteria"`
	Metadata       MetadataDTO                  `json:"metadata"`
	SampleDates    []string                     `json:"sample_dates"`
	Fares          map[string][]FlexibleFareDTO `json:"fares"`
}

// FlexibleCriteriaDTO echoes the effective flexible-search parameters.
type FlexibleCriteriaDTO struct {
	Origin         string   `json:"origin"`
	OriginCity     string   `json:"origin_city,omitempty"`
	Month          string   `json:"month"`
	TripLengthDays int      `json:"trip_length_days"`
	Destinations   []string `json:"destinations"`
	Cabins         []string `json:"cabins"`
	Adults         int      `json:"adults"`
	Currency       string   `json:"currency"`
	NonstopOnly    bool     `json:"nonstop_only"`
}

// FlexibleFareDTO is the cheapest fare found for one destination across the
// sampled departure dates.
type FlexibleFareDTO struct {
	Destination      string       `json:"destination"`
	City             string       `json:"city"`
	Price            PriceDTO     `json:"price"`
	BestDate         string       `json:"best_date"`
	MaxPriceFound    float64      `json:"max_price_found"`
	Savings          float64      `json:"savings"`
	DatesChecked     int          `json:"dates_checked"`
	Airlines         []AirlineDTO `json:"airlines"`
	Stops            int          `json:"stops"`
	Duration         DurationDTO  `json:"duration"`
	GoogleFlightsURL string       `json:"google_flights_url"`
}

// LimitsResponseDTO reports the rate-limit state for the calling identity.
type LimitsResponseDTO struct {
	Limits []ScopeStatusDTO `json:"limits"`
}

// ScopeStatusDTO is one admission scope's state.
type ScopeStatusDTO struct {
	Scope     string `json:"scope"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	ResetAt   string `json:"reset_at"`
}

// ToSearchResponseDTO converts a domain SearchResult to its API view,
// enriching offers with city names, airline display names, deal labels,
// and Google Flights deep links.
func ToSearchResponseDTO(result *domain.SearchResult) *SearchResponseDTO {
	if result == nil {
		return nil
	}

	dto := &SearchResponseDTO{
		SearchCriteria: SearchCriteriaDTO{
			Origin:        result.Request.Origin,
			OriginCity:    refdata.CityName(result.Request.Origin),
			DepartureDate: result.Request.DepartureDate,
			ReturnDate:    result.Request.ReturnDate,
			Cabins:        cabinStrings(result.Request.Cabins),
			Adults:        result.Request.Adults,
			Currency:      result.Request.Currency,
			TopN:          result.Request.TopN,
			NonstopOnly:   result.Request.NonstopOnly,
			Regions:       result.Request.Regions,
		},
		Metadata: toMetadataDTO(result.Metadata),
		Results:  make(map[string][]OfferDTO, len(result.Results)),
		Upgrades: make([]UpgradeDTO, 0, len(result.Upgrades)),
	}

	for cabin, offers := range result.Results {
		views := make([]OfferDTO, 0, len(offers))
		for i := range offers {
			views = append(views, toOfferDTO(&offers[i], result.Request.Origin, cabin,
				result.Deals, result.AirlineNames))
		}
		dto.Results[cabinKey(cabin)] = views
	}

	for _, upgrade := range result.Upgrades {
		dto.Upgrades = append(dto.Upgrades, UpgradeDTO{
			Destination:   upgrade.Destination,
			City:          refdata.CityName(upgrade.Destination),
			EconomyPrice:  upgrade.EconomyPrice,
			BusinessPrice: upgrade.BusinessPrice,
			Premium:       upgrade.Premium,
			Multiplier:    upgrade.Multiplier,
		})
	}

	return dto
}

// ToFlexibleResponseDTO converts a domain FlexibleSearchResult to its API view.
func ToFlexibleResponseDTO(result *domain.FlexibleSearchResult) *FlexibleResponseDTO {
	if result == nil {
		return nil
	}

	dto := &FlexibleResponseDTO{
		SearchCriteria: FlexibleCriteriaDTO{
			Origin:         result.Request.Origin,
			OriginCity:     refdata.CityName(result.Request.Origin),
			Month:          result.Request.Month,
			TripLengthDays: result.Request.TripLengthDays,
			Destinations:   result.Request.Destinations,
			Cabins:         cabinStrings(result.Request.Cabins),
			Adults:         result.Request.Adults,
			Currency:       result.Request.Currency,
			NonstopOnly:    result.Request.NonstopOnly,
		},
		Metadata:    toMetadataDTO(result.Metadata),
		SampleDates: result.SampleDates,
		Fares:       make(map[string][]FlexibleFareDTO, len(result.Fares)),
	}

	for cabin, fares := range result.Fares {
		views := make([]FlexibleFareDTO, 0, len(fares))
		for i := range fares {
			views = append(views, toFlexibleFareDTO(&fares[i], result.Request.Origin, cabin,
				result.AirlineNames))
		}
		dto.Fares[cabinKey(cabin)] = views
	}

	return dto
}

// ToLimitsResponseDTO converts scope statuses to the limits API view.
func ToLimitsResponseDTO(statuses []ratelimit.ScopeStatus) *LimitsResponseDTO {
	dto := &LimitsResponseDTO{
		Limits: make([]ScopeStatusDTO, 0, len(statuses)),
	}
	for _, status := range statuses {
		dto.Limits = append(dto.Limits, ScopeStatusDTO{
			Scope:     string(status.Scope),
			Limit:     status.Limit,
			Remaining: status.Remaining,
			ResetAt:   status.ResetAt.UTC().Format(time.RFC3339),
		})
	}
	return dto
}

// toOfferDTO converts one offer, grading its price against the destination's
// historical metrics and resolving carrier display names.
func toOfferDTO(offer *domain.FlightOffer, origin string, cabin domain.CabinClass,
	deals map[string]*domain.PriceMetrics, airlineNames map[string]string) OfferDTO {

	dto := OfferDTO{
		Destination:   offer.Destination,
		City:          refdata.CityName(offer.Destination),
		Price:         PriceDTO{Amount: offer.Price.Amount, Currency: offer.Price.Currency},
		DepartureTime: offer.DepartureTime.Format(time.RFC3339),
		Airlines:      toAirlineDTOs(offer.Carriers, airlineNames),
		Stops:         offer.Stops,
		Duration: DurationDTO{
			TotalMinutes: offer.Duration.TotalMinutes,
			Formatted:    offer.Duration.Formatted,
		},
		DealLabel: string(deals[offer.Destination].Label(offer.Price.Amount)),
		GoogleFlightsURL: googleFlightsURL(offer.Destination, origin,
			offer.DepartureTime.Format(domain.DateLayout), cabin),
	}

	if !offer.ReturnTime.IsZero() {
		dto.ReturnTime = offer.ReturnTime.Format(time.RFC3339)
	}

	return dto
}

func toFlexibleFareDTO(fare *domain.FlexibleFare, origin string, cabin domain.CabinClass,
	airlineNames map[string]string) FlexibleFareDTO {

	return FlexibleFareDTO{
		Destination:   fare.Destination,
		City:          refdata.CityName(fare.Destination),
		Price:         PriceDTO{Amount: fare.Offer.Price.Amount, Currency: fare.Offer.Price.Currency},
		BestDate:      fare.BestDate,
		MaxPriceFound: fare.MaxPriceFound,
		Savings:       fare.Savings,
		DatesChecked:  fare.DatesChecked,
		Airlines:      toAirlineDTOs(fare.Offer.Carriers, airlineNames),
		Stops:         fare.Offer.Stops,
		Duration: DurationDTO{
			TotalMinutes: fare.Offer.Duration.TotalMinutes,
			Formatted:    fare.Offer.Duration.Formatted,
		},
		GoogleFlightsURL: googleFlightsURL(fare.Destination, origin, fare.BestDate, cabin),
	}
}

// toAirlineDTOs pairs carrier codes with their display names. A code with no
// resolved name falls back to the code itself.
func toAirlineDTOs(carriers []string, names map[string]string) []AirlineDTO {
	result := make([]AirlineDTO, 0, len(carriers))
	for _, code := range carriers {
		name := names[code]
		if name == "" {
			name = code
		}
		result = append(result, AirlineDTO{Code: code, Name: name})
	}
	return result
}

func toMetadataDTO(meta domain.SearchMetadata) MetadataDTO {
	return MetadataDTO{
		CandidatesFound: meta.CandidatesFound,
		PairsPriced:     meta.PairsPriced,
		PairsFailed:     meta.PairsFailed,
		UpstreamCalls:   meta.UpstreamCalls,
		SearchTimeMs:    meta.SearchTimeMs,
		CacheHit:        meta.CacheHit,
	}
}

// googleFlightsURL builds the hand-off deep link for one fare.
func googleFlightsURL(dest, origin, date string, cabin domain.CabinClass) string {
	return fmt.Sprintf(googleFlightsURLFormat, dest, origin, date, cabinKey(cabin))
}

// cabinKey lowercases a cabin class for use as a JSON map key.
func cabinKey(cabin domain.CabinClass) string {
	return strings.ToLower(string(cabin))
}

func cabinStrings(cabins []domain.CabinClass) []string {
	result := make([]string, 0, len(cabins))
	for _, c := range cabins {
		result = append(result, string(c))
	}
	return result
}
