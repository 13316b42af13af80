package usecase

import (
	"context"
	"sync"

	"github.com/farescout/fare-discovery-engine/internal/refdata"
)

// airlineDirectory memoizes carrier code to display name lookups for the
// process lifetime. Airline names never change mid-deployment, so each code
// costs at most one upstream call, ever.
type airlineDirectory struct {
	mu    sync.Mutex
	names map[string]string
}

func newAirlineDirectory() *airlineDirectory {
	return &airlineDirectory{names: make(map[string]string)}
}

// resolve maps the given carrier codes to display names. Unknown codes are
// fetched in one batch call (best-effort, one quota call); codes the provider
// does not know are memoized as themselves so they are never re-fetched.
// Returns the name map and the number of upstream calls consumed.
func (d *airlineDirectory) resolve(ctx context.Context, uc *fareSearchUseCase, codes []string) (map[string]string, int) {
	if len(codes) == 0 {
		return nil, 0
	}

	resolved := make(map[string]string, len(codes))

	d.mu.Lock()
	var unknown []string
	for _, code := range codes {
		if name, ok := d.names[code]; ok {
			resolved[code] = name
		} else {
			unknown = append(unknown, code)
		}
	}
	d.mu.Unlock()

	if len(unknown) == 0 {
		return resolved, 0
	}

	log := uc.log.WithStage("airlines")
	if !uc.gate.TryReserveCalls(1) {
		log.Info().Msg("monthly quota too low for airline lookup, skipping")
		return resolved, 0
	}

	callCtx, cancel := uc.callCtx(ctx)
	defer cancel()

	fetched, err := uc.source.AirlineNames(callCtx, unknown)
	if err != nil {
		log.Warn().Err(err).Msg("airline name lookup failed")
		return resolved, 1
	}

	d.mu.Lock()
	for _, code := range unknown {
		name := code
		if raw, ok := fetched[code]; ok && raw != "" {
			name = refdata.CleanAirlineName(raw)
		}
		d.names[code] = name
		resolved[code] = name
	}
	d.mu.Unlock()

	return resolved, 1
}
