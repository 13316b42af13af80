package http

import (
	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/usecase"
)

// ToSearchRequest converts a validated HTTP request to the domain search
// request. Defaults for empty fields are applied by the use case.
func ToSearchRequest(req *SearchAnywhereRequest) domain.SearchRequest {
	return domain.SearchRequest{
		Origin:        req.Origin,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Cabins:        toCabins(req.Cabins),
		Adults:        req.Adults,
		Currency:      req.Currency,
		TopN:          req.TopN,
		NonstopOnly:   req.NonstopOnly,
		MaxPrice:      req.MaxPrice,
		Regions:       req.Regions,
	}
}

// ToFlexibleRequest converts a validated HTTP request to the domain
// flexible-date search request.
func ToFlexibleRequest(req *FlexibleRequest) domain.FlexibleSearchRequest {
	return domain.FlexibleSearchRequest{
		Origin:         req.Origin,
		Month:          req.Month,
		TripLengthDays: req.TripLengthDays,
		Destinations:   req.Destinations,
		Cabins:         toCabins(req.Cabins),
		Adults:         req.Adults,
		Currency:       req.Currency,
		NonstopOnly:    req.NonstopOnly,
		MaxPrice:       req.MaxPrice,
	}
}

// ToSearchOptions extracts the per-request options from the HTTP request.
func ToSearchOptions(req *SearchAnywhereRequest) usecase.SearchOptions {
	return usecase.SearchOptions{
		Filters: toFilterOptions(req.Filters),
	}
}

// toFilterOptions converts the filter DTO to domain filter options.
// Returns nil when no filters were supplied.
func toFilterOptions(dto *FilterDTO) *domain.FilterOptions {
	if dto == nil {
		return nil
	}
	return &domain.FilterOptions{
		MaxStops:           dto.MaxStops,
		Carriers:           dto.Carriers,
		MaxDurationMinutes: dto.MaxDurationMinutes,
	}
}

// toCabins converts cabin strings to domain cabin classes. Values that do
// not parse are dropped; Validate has already rejected them.
func toCabins(cabins []string) []domain.CabinClass {
	if len(cabins) == 0 {
		return nil
	}
	result := make([]domain.CabinClass, 0, len(cabins))
	for _, s := range cabins {
		if c, ok := domain.ParseCabin(s); ok {
			result = append(result, c)
		}
	}
	return result
}
