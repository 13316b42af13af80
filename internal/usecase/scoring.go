package usecase

import (
	"context"
	"sync"

	"github.com/farescout/fare-discovery-engine/internal/domain"
)

// dealScores fetches historical price quartiles for every priced destination,
// in parallel. The whole stage is best-effort: it runs only when the monthly
// quota can cover one call per destination, and individual failures leave a
// nil entry meaning "no data". Returns the metrics map and the number of
// upstream calls consumed.
func (uc *fareSearchUseCase) dealScores(ctx context.Context, req domain.SearchRequest, results domain.CabinResults) (map[string]*domain.PriceMetrics, int) {
	log := uc.log.WithStage("scoring")

	destinations := results.Destinations()
	if len(destinations) == 0 {
		return nil, 0
	}

	if !uc.gate.TryReserveCalls(len(destinations)) {
		log.Info().Int("destinations", len(destinations)).Msg("monthly quota too low for deal scoring, skipping")
		return nil, 0
	}

	deals := make(map[string]*domain.PriceMetrics, len(destinations))
	var mu sync.Mutex
	var wg sync.WaitGroup

	sem := make(chan struct{}, uc.cfg.MaxConcurrent)
	for _, dest := range destinations {
		wg.Add(1)
		go func(dest string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Error().Str("destination", dest).Interface("panic", r).Msg("deal scoring panic")
				}
			}()

			sem <- struct{}{}
			defer func() { <-sem }()

			callCtx, cancel := uc.callCtx(ctx)
			defer cancel()

			metrics, err := uc.source.PriceMetrics(callCtx, domain.MetricsQuery{
				Origin:        req.Origin,
				Destination:   dest,
				DepartureDate: req.DepartureDate,
			})
			if err != nil {
				log.Debug().Str("destination", dest).Err(err).Msg("no price metrics")
				metrics = nil
			}

			mu.Lock()
			deals[dest] = metrics
			mu.Unlock()
		}(dest)
	}
	wg.Wait()

	return deals, len(destinations)
}
