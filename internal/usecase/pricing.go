package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/farescout/fare-discovery-engine/internal/domain"
)

// pairJob is one (destination, cabin) pricing call.
type pairJob struct {
	candidate domain.DestinationCandidate
	cabin     domain.CabinClass
}

// poolResult holds the outcome of a single upstream call in a fan-out.
type poolResult struct {
	index  int
	offers []domain.FlightOffer
	err    error
	done   bool
}

// pricedPairs aggregates the pricing fan-out outcome.
type pricedPairs struct {
	// offersByCabin holds the raw offers in job submission order, so
	// first-seen tie-breaks downstream stay deterministic.
	offersByCabin map[domain.CabinClass][]domain.FlightOffer

	pairsPriced int
	pairsFailed int
	totalOffers int

	// firstRejection is the first UpstreamRejected seen, surfaced only
	// when the whole search produced zero offers.
	firstRejection error
}

// pricePairs fans one pricing call per (candidate, cabin) pair out over a
// bounded worker pool. Per-pair failures are isolated: logged, counted, and
// never allowed to abort sibling pairs.
func (uc *fareSearchUseCase) pricePairs(ctx context.Context, req domain.SearchRequest, candidates []domain.DestinationCandidate) pricedPairs {
	log := uc.log.WithStage("pricing")

	jobs := make([]pairJob, 0, len(candidates)*len(req.Cabins))
	for _, cabin := range req.Cabins {
		for _, candidate := range candidates {
			jobs = append(jobs, pairJob{candidate: candidate, cabin: cabin})
		}
	}

	results := uc.runPool(ctx, len(jobs), func(ctx context.Context, i int) ([]domain.FlightOffer, error) {
		return uc.source.SearchOffers(ctx, uc.offersQuery(req, jobs[i]))
	})

	priced := pricedPairs{offersByCabin: make(map[domain.CabinClass][]domain.FlightOffer, len(req.Cabins))}
	for _, res := range results {
		job := jobs[res.index]
		if res.err != nil {
			priced.pairsFailed++
			if domain.IsUpstreamRejected(res.err) && priced.firstRejection == nil {
				priced.firstRejection = res.err
			}
			log.Warn().
				Str("cabin", string(job.cabin)).
				Str("destination", job.candidate.Destination).
				Err(res.err).
				Msg("pricing call failed")
			continue
		}
		priced.pairsPriced++
		priced.totalOffers += len(res.offers)
		priced.offersByCabin[job.cabin] = append(priced.offersByCabin[job.cabin], res.offers...)
	}

	return priced
}

// offersQuery builds the upstream query for one pair. Explicit request dates
// win; discovery's suggested dates fill the gaps.
func (uc *fareSearchUseCase) offersQuery(req domain.SearchRequest, job pairJob) domain.OffersQuery {
	departure := req.DepartureDate
	if departure == "" {
		departure = job.candidate.DepartureDate
	}
	returnDate := req.ReturnDate
	if returnDate == "" {
		returnDate = job.candidate.ReturnDate
	}

	return domain.OffersQuery{
		Origin:        req.Origin,
		Destination:   job.candidate.Destination,
		DepartureDate: departure,
		ReturnDate:    returnDate,
		Cabin:         job.cabin,
		Adults:        req.Adults,
		Currency:      req.Currency,
		MaxResults:    offersPerPair,
		NonstopOnly:   req.NonstopOnly,
		MaxPrice:      req.MaxPrice,
	}
}

// runPool executes count upstream calls over a bounded worker pool with
// per-call timeout and per-job panic recovery. The returned slice is in
// submission order regardless of worker scheduling. Jobs never started
// because the context expired come back as failures so the metadata adds up.
func (uc *fareSearchUseCase) runPool(ctx context.Context, count int, call func(context.Context, int) ([]domain.FlightOffer, error)) []poolResult {
	jobsChan := make(chan int)
	resultsChan := make(chan poolResult, count)

	workers := uc.cfg.MaxConcurrent
	if workers > count {
		workers = count
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobsChan {
				resultsChan <- uc.runJob(ctx, index, call)
			}
		}()
	}

	go func() {
		defer close(jobsChan)
		for i := 0; i < count; i++ {
			select {
			case jobsChan <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	results := make([]poolResult, count)
	for res := range resultsChan {
		res.done = true
		results[res.index] = res
	}

	for i := range results {
		if !results[i].done {
			results[i] = poolResult{index: i, err: ctx.Err(), done: true}
		}
	}

	return results
}

// runJob executes one upstream call with timeout and panic recovery.
func (uc *fareSearchUseCase) runJob(ctx context.Context, index int, call func(context.Context, int) ([]domain.FlightOffer, error)) (res poolResult) {
	res = poolResult{index: index}

	defer func() {
		if r := recover(); r != nil {
			res.offers = nil
			res.err = fmt.Errorf("pricing worker panic: %v", r)
		}
	}()

	callCtx, cancel := uc.callCtx(ctx)
	defer cancel()

	res.offers, res.err = call(callCtx, index)
	return res
}
