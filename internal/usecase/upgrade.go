package usecase

import (
	"sort"

	"github.com/farescout/fare-discovery-engine/internal/domain"
)

// AnalyzeUpgrade compares economy and business fares per destination and
// reports the upgrade cost for destinations priced in both cabins, cheapest
// relative upgrade first. Empty when either cabin is absent or the
// destination sets do not overlap.
func AnalyzeUpgrade(results domain.CabinResults) []domain.UpgradeComparison {
	economy := cheapestPerDestination(results[domain.CabinEconomy])
	business := cheapestPerDestination(results[domain.CabinBusiness])
	if len(economy) == 0 || len(business) == 0 {
		return nil
	}

	common := make([]string, 0, len(economy))
	for dest := range economy {
		if _, ok := business[dest]; ok {
			common = append(common, dest)
		}
	}
	sort.Strings(common)

	comparisons := make([]domain.UpgradeComparison, 0, len(common))
	for _, dest := range common {
		econPrice := economy[dest].Price.Amount
		bizPrice := business[dest].Price.Amount

		multiplier := 0.0
		if econPrice > 0 {
			multiplier = bizPrice / econPrice
		}

		comparisons = append(comparisons, domain.UpgradeComparison{
			Destination:   dest,
			EconomyPrice:  econPrice,
			BusinessPrice: bizPrice,
			Premium:       bizPrice - econPrice,
			Multiplier:    multiplier,
		})
	}

	sort.SliceStable(comparisons, func(i, j int) bool {
		return comparisons[i].Multiplier < comparisons[j].Multiplier
	})
	return comparisons
}
