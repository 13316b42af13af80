package usecase

import (
	"sort"

	"github.com/farescout/fare-discovery-engine/internal/domain"
)

// rankAll runs the filter/dedup/sort pipeline for every cabin.
func rankAll(raw domain.CabinResults, filters *domain.FilterOptions) domain.CabinResults {
	ranked := make(domain.CabinResults, len(raw))
	for cabin, offers := range raw {
		ranked[cabin] = rankOffers(offers, filters)
	}
	return ranked
}

// rankOffers filters the offers, keeps the cheapest per destination, and
// sorts ascending by price. Survivors are collected in first-seen destination
// order before the sort so equal prices rank deterministically.
func rankOffers(offers []domain.FlightOffer, filters *domain.FilterOptions) []domain.FlightOffer {
	filtered := filterOffers(offers, filters)
	cheapest := cheapestPerDestination(filtered)

	ranked := make([]domain.FlightOffer, 0, len(cheapest))
	seen := make(map[string]bool, len(cheapest))
	for _, offer := range filtered {
		if seen[offer.Destination] {
			continue
		}
		seen[offer.Destination] = true
		ranked = append(ranked, cheapest[offer.Destination])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Price.Amount < ranked[j].Price.Amount
	})
	return ranked
}

// filterOffers applies the optional filter options.
func filterOffers(offers []domain.FlightOffer, filters *domain.FilterOptions) []domain.FlightOffer {
	if filters == nil {
		return offers
	}
	result := make([]domain.FlightOffer, 0, len(offers))
	for _, offer := range offers {
		if filters.MatchesOffer(offer) {
			result = append(result, offer)
		}
	}
	return result
}

// cheapestPerDestination reduces an offer list to the minimum-price offer per
// destination. Ties keep the first-seen offer. Both the ranking path and the
// upgrade analyzer share this reduction so the two cannot disagree.
func cheapestPerDestination(offers []domain.FlightOffer) map[string]domain.FlightOffer {
	cheapest := make(map[string]domain.FlightOffer, len(offers))
	for _, offer := range offers {
		best, ok := cheapest[offer.Destination]
		if !ok || offer.Price.Amount < best.Price.Amount {
			cheapest[offer.Destination] = offer
		}
	}
	return cheapest
}
