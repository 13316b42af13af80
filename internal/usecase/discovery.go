package usecase

import (
	"context"
	"errors"

	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/infrastructure/retry"
	"github.com/farescout/fare-discovery-engine/internal/refdata"
)

// discoverCandidates produces the destination shortlist for a search. The
// second return value is the number of upstream calls consumed.
//
// Region searches use the curated hub lists and cost nothing. Otherwise the
// inspiration endpoint is tried (one retry on transient failure, each attempt
// paying its own quota call), then the direct-destinations fallback. A
// rejection propagates; any other terminal failure degrades to an empty
// shortlist, which is a valid empty search result.
func (uc *fareSearchUseCase) discoverCandidates(ctx context.Context, req domain.SearchRequest) ([]domain.DestinationCandidate, int, error) {
	log := uc.log.WithStage("discovery")

	if len(req.Regions) > 0 {
		codes := refdata.HubDestinations(req.Regions)
		candidates := make([]domain.DestinationCandidate, 0, len(codes))
		for _, code := range codes {
			candidates = append(candidates, domain.DestinationCandidate{Destination: code})
		}
		return dedupAndCap(candidates, req.TopN), 0, nil
	}

	calls := 0
	query := domain.DiscoveryQuery{
		Origin:        req.Origin,
		DepartureDate: req.DepartureDate,
		MaxPrice:      req.MaxPrice,
	}

	retryCfg := retry.DiscoveryConfig.WithRetryIf(func(err error) bool {
		return retry.SkipPermanent(err) && domain.IsUpstreamUnavailable(err)
	})

	candidates, err := retry.DoWithResult(ctx, func() ([]domain.DestinationCandidate, error) {
		if rerr := uc.gate.ReserveCalls(1); rerr != nil {
			return nil, retry.NewPermanent(rerr)
		}
		calls++

		callCtx, cancel := uc.callCtx(ctx)
		defer cancel()
		return uc.source.Discover(callCtx, query)
	}, retryCfg)

	if err == nil {
		return dedupAndCap(candidates, req.TopN), calls, nil
	}
	if domain.IsRateLimitExceeded(err) || domain.IsUpstreamRejected(err) {
		return nil, calls, err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		if ctx.Err() != nil {
			return nil, calls, err
		}
	}

	log.Warn().Err(err).Msg("inspiration discovery failed, trying direct destinations")

	if rerr := uc.gate.ReserveCalls(1); rerr != nil {
		return nil, calls, rerr
	}
	calls++

	callCtx, cancel := uc.callCtx(ctx)
	defer cancel()
	codes, ferr := uc.source.DirectDestinations(callCtx, req.Origin)
	if ferr != nil {
		if domain.IsUpstreamRejected(ferr) {
			return nil, calls, ferr
		}
		log.Warn().Err(ferr).Msg("direct-destinations fallback failed, returning empty shortlist")
		return []domain.DestinationCandidate{}, calls, nil
	}

	candidates = make([]domain.DestinationCandidate, 0, len(codes))
	for _, code := range codes {
		candidates = append(candidates, domain.DestinationCandidate{Destination: code})
	}
	return dedupAndCap(candidates, req.TopN), calls, nil
}

// dedupAndCap collapses secondary airports onto their primary (first
// occurrence wins) and truncates the shortlist to topN.
func dedupAndCap(candidates []domain.DestinationCandidate, topN int) []domain.DestinationCandidate {
	seen := make(map[string]bool, len(candidates))
	deduped := make([]domain.DestinationCandidate, 0, len(candidates))
	for _, c := range candidates {
		primary := refdata.SameCityPrimary(c.Destination)
		if seen[primary] {
			continue
		}
		seen[primary] = true
		c.Destination = primary
		deduped = append(deduped, c)
	}

	if topN > 0 && len(deduped) > topN {
		deduped = deduped[:topN]
	}
	return deduped
}
