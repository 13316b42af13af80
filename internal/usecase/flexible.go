package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/ratelimit"
)

// flexJob is one (cabin, destination, departure date) probe.
type flexJob struct {
	cabin       domain.CabinClass
	destination string
	date        string
}

// SearchFlexible implements FareSearchUseCase.SearchFlexible. It prices a
// handful of sampled departure dates per destination and reports, per cabin,
// the cheapest date found along with the spread across the samples.
func (uc *fareSearchUseCase) SearchFlexible(ctx context.Context, req domain.FlexibleSearchRequest, id ratelimit.Identity) (*domain.FlexibleSearchResult, error) {
	startTime := time.Now()
	now := uc.clock.Now()

	req.ApplyDefaults(uc.cfg.Defaults)
	if err := req.Validate(now); err != nil {
		return nil, err
	}

	if err := uc.gate.AdmitSearch(id); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.GlobalTimeout)
	defer cancel()

	if cached, ok := uc.cache.GetFlexible(ctx, req); ok {
		return &domain.FlexibleSearchResult{
			Request:      req,
			Fares:        cached.Fares,
			SampleDates:  cached.SampleDates,
			AirlineNames: cached.AirlineNames,
			Metadata: domain.SearchMetadata{
				CandidatesFound: len(req.Destinations),
				SearchTimeMs:    time.Since(startTime).Milliseconds(),
				CacheHit:        true,
			},
		}, nil
	}

	dates := req.SampleDates(now)
	jobs := make([]flexJob, 0, len(req.Cabins)*len(req.Destinations)*len(dates))
	for _, cabin := range req.Cabins {
		for _, dest := range req.Destinations {
			for _, date := range dates {
				jobs = append(jobs, flexJob{cabin: cabin, destination: dest, date: date})
			}
		}
	}

	if err := uc.gate.ReserveCalls(len(jobs)); err != nil {
		return nil, err
	}

	log := uc.log.WithStage("flexible")
	results := uc.runPool(ctx, len(jobs), func(ctx context.Context, i int) ([]domain.FlightOffer, error) {
		return uc.source.SearchOffers(ctx, uc.flexQuery(req, jobs[i]))
	})

	type aggKey struct {
		cabin       domain.CabinClass
		destination string
	}
	aggregates := make(map[aggKey]*domain.FlexibleFare, len(req.Cabins)*len(req.Destinations))

	pairsPriced, pairsFailed := 0, 0
	var firstRejection error
	totalOffers := 0

	for _, res := range results {
		job := jobs[res.index]
		if res.err != nil {
			pairsFailed++
			if domain.IsUpstreamRejected(res.err) && firstRejection == nil {
				firstRejection = res.err
			}
			log.Warn().
				Str("cabin", string(job.cabin)).
				Str("destination", job.destination).
				Str("date", job.date).
				Err(res.err).
				Msg("flexible probe failed")
			continue
		}
		pairsPriced++
		totalOffers += len(res.offers)
		if len(res.offers) == 0 {
			continue
		}

		cheapest := res.offers[0]
		for _, offer := range res.offers[1:] {
			if offer.Price.Amount < cheapest.Price.Amount {
				cheapest = offer
			}
		}

		key := aggKey{cabin: job.cabin, destination: job.destination}
		fare, ok := aggregates[key]
		if !ok {
			fare = &domain.FlexibleFare{
				Destination:   job.destination,
				Offer:         cheapest,
				BestDate:      job.date,
				MaxPriceFound: cheapest.Price.Amount,
			}
			aggregates[key] = fare
		} else {
			if cheapest.Price.Amount < fare.Offer.Price.Amount {
				fare.Offer = cheapest
				fare.BestDate = job.date
			}
			if cheapest.Price.Amount > fare.MaxPriceFound {
				fare.MaxPriceFound = cheapest.Price.Amount
			}
		}
		fare.DatesChecked++
		fare.Savings = fare.MaxPriceFound - fare.Offer.Price.Amount
	}

	if totalOffers == 0 && firstRejection != nil {
		return nil, firstRejection
	}

	fares := make(map[domain.CabinClass][]domain.FlexibleFare, len(req.Cabins))
	carrierSet := make(map[string]bool)
	var carriers []string
	for _, cabin := range req.Cabins {
		cabinFares := make([]domain.FlexibleFare, 0, len(req.Destinations))
		for _, dest := range req.Destinations {
			if fare, ok := aggregates[aggKey{cabin: cabin, destination: dest}]; ok {
				cabinFares = append(cabinFares, *fare)
				for _, carrier := range fare.Offer.Carriers {
					if !carrierSet[carrier] {
						carrierSet[carrier] = true
						carriers = append(carriers, carrier)
					}
				}
			}
		}
		sort.SliceStable(cabinFares, func(i, j int) bool {
			return cabinFares[i].Offer.Price.Amount < cabinFares[j].Offer.Price.Amount
		})
		fares[cabin] = cabinFares
	}

	airlineNames, airlineCalls := uc.airlines.resolve(ctx, uc, carriers)

	result := &domain.FlexibleSearchResult{
		Request:      req,
		Fares:        fares,
		SampleDates:  dates,
		AirlineNames: airlineNames,
		Metadata: domain.SearchMetadata{
			CandidatesFound: len(req.Destinations),
			PairsPriced:     pairsPriced,
			PairsFailed:     pairsFailed,
			UpstreamCalls:   len(jobs) + airlineCalls,
			SearchTimeMs:    time.Since(startTime).Milliseconds(),
		},
	}

	if err := uc.cache.SetFlexible(ctx, req, &domain.CachedFlexible{
		Fares:        fares,
		SampleDates:  dates,
		AirlineNames: airlineNames,
	}); err != nil {
		uc.log.Warn().Err(err).Msg("failed to store flexible result in cache")
	}

	return result, nil
}

// flexQuery builds the upstream query for one probe. The return date is the
// sampled departure plus the requested trip length.
func (uc *fareSearchUseCase) flexQuery(req domain.FlexibleSearchRequest, job flexJob) domain.OffersQuery {
	returnDate := ""
	if dep, err := time.Parse(domain.DateLayout, job.date); err == nil {
		returnDate = dep.AddDate(0, 0, req.TripLengthDays).Format(domain.DateLayout)
	}

	return domain.OffersQuery{
		Origin:        req.Origin,
		Destination:   job.destination,
		DepartureDate: job.date,
		ReturnDate:    returnDate,
		Cabin:         job.cabin,
		Adults:        req.Adults,
		Currency:      req.Currency,
		MaxResults:    offersPerFlexJob,
		NonstopOnly:   req.NonstopOnly,
		MaxPrice:      req.MaxPrice,
	}
}
