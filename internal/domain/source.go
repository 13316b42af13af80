package domain

import "context"

//go:generate mockgen -source=source.go -destination=mocks/fare_source.go -package=mocks

// DiscoveryQuery parameterizes the upstream cheap-destinations call.
type DiscoveryQuery struct {
	// Origin is the IATA code of the departure airport
	Origin string

	// DepartureDate optionally pins the departure date (YYYY-MM-DD)
	DepartureDate string

	// MaxPrice optionally caps the advisory price. Zero means no cap.
	MaxPrice int
}

// OffersQuery parameterizes the upstream live-offers call for one route.
type OffersQuery struct {
	Origin        string
	Destination   string
	DepartureDate string

	// ReturnDate is empty for one-way searches
	ReturnDate string

	Cabin    CabinClass
	Adults   int
	Currency string

	// MaxResults caps how many offers the upstream returns
	MaxResults int

	NonstopOnly bool

	// MaxPrice caps offer prices. Zero means no cap.
	MaxPrice int
}

// MetricsQuery parameterizes the upstream historical price-analytics call.
type MetricsQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
}

// FareSource is the port to the metered flight-data provider. The one
// concrete implementation lives in internal/upstream/amadeus; tests use
// the generated mock or the configurable fake in test/mock.
//
// Every method maps provider failures onto the domain error taxonomy:
// transient problems wrap ErrUpstreamUnavailable, parameter rejections wrap
// ErrUpstreamRejected. Callers never see raw transport errors.
type FareSource interface {
	// Discover returns cheap candidate destinations from the origin,
	// ordered by the upstream's own ranking.
	Discover(ctx context.Context, query DiscoveryQuery) ([]DestinationCandidate, error)

	// DirectDestinations returns the IATA codes reachable nonstop from
	// the origin. Used as the discovery fallback; carries no prices.
	DirectDestinations(ctx context.Context, origin string) ([]string, error)

	// SearchOffers returns live offers for one (route, date, cabin) query.
	SearchOffers(ctx context.Context, query OffersQuery) ([]FlightOffer, error)

	// PriceMetrics returns historical price quartiles for a route, or an
	// error when the provider has no data or is unavailable.
	PriceMetrics(ctx context.Context, query MetricsQuery) (*PriceMetrics, error)

	// AirlineNames resolves carrier codes to display names in one call.
	// Codes the provider does not know are absent from the result.
	AirlineNames(ctx context.Context, codes []string) (map[string]string, error)
}
