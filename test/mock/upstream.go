// Package mock provides test doubles for the fare discovery engine.
// The upstream fake supports configurable delays, errors, and responses for
// integration testing, with per-operation call counting.
package mock

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/farescout/fare-discovery-engine/internal/domain"
)

// FareSource is a configurable fake implementation of domain.FareSource.
// Configure it with the builder pattern methods; all methods are safe for
// concurrent use.
type FareSource struct {
	mu sync.Mutex

	candidates  []domain.DestinationCandidate
	discoverErr error
	// discoverErrOnce fails the first Discover call only, then clears.
	discoverErrOnce error

	directCodes []string
	directErr   error

	// offersByKey maps "DEST/CABIN" to canned offers. When a key is absent
	// and offersFn is nil, SearchOffers returns a synthetic offer.
	offersByKey map[string][]domain.FlightOffer
	offersErr   error
	// offersFn, when set, overrides all other offer configuration.
	offersFn func(query domain.OffersQuery) ([]domain.FlightOffer, error)

	metricsByDest map[string]*domain.PriceMetrics
	metricsErr    error

	airlineNames map[string]string
	airlinesErr  error

	delay time.Duration

	calls map[string]int
}

// NewFareSource creates a fake upstream with empty defaults.
func NewFareSource() *FareSource {
	return &FareSource{
		offersByKey:   make(map[string][]domain.FlightOffer),
		metricsByDest: make(map[string]*domain.PriceMetrics),
		airlineNames:  make(map[string]string),
		calls:         make(map[string]int),
	}
}

// WithCandidates configures the destinations Discover returns.
func (f *FareSource) WithCandidates(candidates ...domain.DestinationCandidate) *FareSource {
	f.candidates = candidates
	return f
}

// WithDiscoverError makes every Discover call fail with err.
func (f *FareSource) WithDiscoverError(err error) *FareSource {
	f.discoverErr = err
	return f
}

// WithDiscoverErrorOnce makes only the first Discover call fail with err.
func (f *FareSource) WithDiscoverErrorOnce(err error) *FareSource {
	f.discoverErrOnce = err
	return f
}

// WithDirectDestinations configures the fallback destination codes.
func (f *FareSource) WithDirectDestinations(codes ...string) *FareSource {
	f.directCodes = codes
	return f
}

// WithDirectError makes DirectDestinations fail with err.
func (f *FareSource) WithDirectError(err error) *FareSource {
	f.directErr = err
	return f
}

// WithOffers configures the offers returned for one (destination, cabin) pair.
func (f *FareSource) WithOffers(destination string, cabin domain.CabinClass, offers ...domain.FlightOffer) *FareSource {
	f.offersByKey[offerKey(destination, cabin)] = offers
	return f
}

// WithOffersError makes every SearchOffers call fail with err.
func (f *FareSource) WithOffersError(err error) *FareSource {
	f.offersErr = err
	return f
}

// WithOffersFunc routes every SearchOffers call through fn, overriding all
// other offer configuration.
func (f *FareSource) WithOffersFunc(fn func(query domain.OffersQuery) ([]domain.FlightOffer, error)) *FareSource {
	f.offersFn = fn
	return f
}

// WithMetrics configures the price metrics for a destination.
func (f *FareSource) WithMetrics(destination string, metrics *domain.PriceMetrics) *FareSource {
	f.metricsByDest[destination] = metrics
	return f
}

// WithMetricsError makes every PriceMetrics call fail with err.
func (f *FareSource) WithMetricsError(err error) *FareSource {
	f.metricsErr = err
	return f
}

// WithAirlineNames configures the carrier name directory.
func (f *FareSource) WithAirlineNames(names map[string]string) *FareSource {
	f.airlineNames = names
	return f
}

// WithAirlinesError makes every AirlineNames call fail with err.
func (f *FareSource) WithAirlinesError(err error) *FareSource {
	f.airlinesErr = err
	return f
}

// WithDelay makes every call wait the given duration before responding.
// Useful for testing timeout behavior.
func (f *FareSource) WithDelay(d time.Duration) *FareSource {
	f.delay = d
	return f
}

// Discover implements domain.FareSource.Discover.
func (f *FareSource) Discover(ctx context.Context, query domain.DiscoveryQuery) ([]domain.DestinationCandidate, error) {
	if err := f.wait(ctx, "Discover"); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.discoverErrOnce != nil {
		err := f.discoverErrOnce
		f.discoverErrOnce = nil
		return nil, err
	}
	if f.discoverErr != nil {
		return nil, f.discoverErr
	}
	return f.candidates, nil
}

// DirectDestinations implements domain.FareSource.DirectDestinations.
func (f *FareSource) DirectDestinations(ctx context.Context, origin string) ([]string, error) {
	if err := f.wait(ctx, "DirectDestinations"); err != nil {
		return nil, err
	}
	if f.directErr != nil {
		return nil, f.directErr
	}
	return f.directCodes, nil
}

// SearchOffers implements domain.FareSource.SearchOffers. Pairs without
// canned offers get one synthetic offer so pipeline tests don't have to
// configure every pair.
func (f *FareSource) SearchOffers(ctx context.Context, query domain.OffersQuery) ([]domain.FlightOffer, error) {
	if err := f.wait(ctx, "SearchOffers"); err != nil {
		return nil, err
	}
	if f.offersFn != nil {
		return f.offersFn(query)
	}
	if f.offersErr != nil {
		return nil, f.offersErr
	}

	f.mu.Lock()
	offers, ok := f.offersByKey[offerKey(query.Destination, query.Cabin)]
	f.mu.Unlock()
	if ok {
		return offers, nil
	}
	return []domain.FlightOffer{SampleOffer(query.Destination, query.Cabin, 500)}, nil
}

// PriceMetrics implements domain.FareSource.PriceMetrics.
func (f *FareSource) PriceMetrics(ctx context.Context, query domain.MetricsQuery) (*domain.PriceMetrics, error) {
	if err := f.wait(ctx, "PriceMetrics"); err != nil {
		return nil, err
	}
	if f.metricsErr != nil {
		return nil, f.metricsErr
	}

	f.mu.Lock()
	metrics, ok := f.metricsByDest[query.Destination]
	f.mu.Unlock()
	if !ok {
		return nil, domain.NewUpstreamRejected("price-metrics", 200, "no price history for route")
	}
	return metrics, nil
}

// AirlineNames implements domain.FareSource.AirlineNames.
func (f *FareSource) AirlineNames(ctx context.Context, codes []string) (map[string]string, error) {
	if err := f.wait(ctx, "AirlineNames"); err != nil {
		return nil, err
	}
	if f.airlinesErr != nil {
		return nil, f.airlinesErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	result := make(map[string]string, len(codes))
	for _, code := range codes {
		if name, ok := f.airlineNames[code]; ok {
			result[code] = name
		}
	}
	return result, nil
}

// wait records the call and applies the configured delay, respecting
// context cancellation.
func (f *FareSource) wait(ctx context.Context, op string) error {
	f.mu.Lock()
	f.calls[op]++
	delay := f.delay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return ctx.Err()
}

// CallCount returns how many times the named operation was invoked
// (Discover, DirectDestinations, SearchOffers, PriceMetrics, AirlineNames).
func (f *FareSource) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// TotalCalls returns the total number of upstream calls across operations.
func (f *FareSource) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// Reset clears all call counts.
func (f *FareSource) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = make(map[string]int)
}

// Ensure FareSource implements domain.FareSource at compile time.
var _ domain.FareSource = (*FareSource)(nil)

func offerKey(destination string, cabin domain.CabinClass) string {
	return strings.ToUpper(destination) + "/" + string(cabin)
}

// SampleOffer builds a realistic offer for tests.
func SampleOffer(destination string, cabin domain.CabinClass, price float64) domain.FlightOffer {
	departure := time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)
	carrier := "AC"
	if cabin == domain.CabinBusiness {
		carrier = "NH"
	}

	return domain.FlightOffer{
		Destination:   destination,
		Price:         domain.PriceInfo{Amount: price, Currency: "CAD"},
		DepartureTime: departure,
		ReturnTime:    departure.AddDate(0, 0, 7),
		Carriers:      []string{carrier},
		Stops:         0,
		Duration:      domain.NewDurationInfo(555),
	}
}

// SampleCandidates builds discovery candidates for the given codes.
func SampleCandidates(codes ...string) []domain.DestinationCandidate {
	candidates := make([]domain.DestinationCandidate, 0, len(codes))
	for i, code := range codes {
		candidates = append(candidates, domain.DestinationCandidate{
			Destination:   code,
			Price:         400 + float64(i)*100,
			DepartureDate: "2026-10-15",
			ReturnDate:    "2026-10-22",
		})
	}
	return candidates
}
