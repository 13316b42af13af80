package domain

// CabinResults maps each requested cabin class to its ranked offer list.
// Within a cabin, destinations are unique (cheapest offer survives) and
// offers are sorted ascending by price.
type CabinResults map[CabinClass][]FlightOffer

// Destinations returns the unique destination codes across all cabins,
// in first-seen order (economy first when present).
func (r CabinResults) Destinations() []string {
	seen := make(map[string]bool)
	var codes []string
	for _, cabin := range SupportedCabins() {
		for _, offer := range r[cabin] {
			if seen[offer.Destination] {
				continue
			}
			seen[offer.Destination] = true
			codes = append(codes, offer.Destination)
		}
	}
	return codes
}

// CarrierCodes returns the unique carrier codes across all offers.
func (r CabinResults) CarrierCodes() []string {
	seen := make(map[string]bool)
	var codes []string
	for _, cabin := range SupportedCabins() {
		for _, offer := range r[cabin] {
			for _, carrier := range offer.Carriers {
				if seen[carrier] {
					continue
				}
				seen[carrier] = true
				codes = append(codes, carrier)
			}
		}
	}
	return codes
}

// UpgradeComparison reports the cost of moving up from economy for one
// destination present in both the ECONOMY and BUSINESS result sets.
// Recomputed on every search, never persisted.
type UpgradeComparison struct {
	// Destination is the IATA code the comparison applies to
	Destination string `json:"destination"`

	// EconomyPrice is the cheapest economy price found
	EconomyPrice float64 `json:"economy_price"`

	// BusinessPrice is the cheapest business price found
	BusinessPrice float64 `json:"business_price"`

	// Premium is BusinessPrice - EconomyPrice
	Premium float64 `json:"premium"`

	// Multiplier is BusinessPrice / EconomyPrice; 0 when economy is free
	Multiplier float64 `json:"multiplier"`
}

// SearchMetadata records how a search executed.
type SearchMetadata struct {
	// CandidatesFound is the number of destinations discovery produced
	CandidatesFound int `json:"candidates_found"`

	// PairsPriced is the number of (destination, cabin) pricing calls that succeeded
	PairsPriced int `json:"pairs_priced"`

	// PairsFailed is the number of pricing calls that failed or timed out
	PairsFailed int `json:"pairs_failed"`

	// UpstreamCalls is the total number of upstream calls the search consumed
	UpstreamCalls int `json:"upstream_calls"`

	// SearchTimeMs is the total search duration in milliseconds
	SearchTimeMs int64 `json:"search_time_ms"`

	// CacheHit indicates whether the results came from cache
	CacheHit bool `json:"cache_hit"`
}

// SearchResult is the full outcome of an "anywhere" search.
type SearchResult struct {
	// Request echoes the effective (defaulted) search parameters
	Request SearchRequest `json:"request"`

	// Results holds the ranked, deduplicated offers per cabin
	Results CabinResults `json:"results"`

	// Upgrades lists economy-to-business comparisons, best value first
	Upgrades []UpgradeComparison `json:"upgrades"`

	// Deals maps destination to historical price metrics; nil entry = no data
	Deals map[string]*PriceMetrics `json:"deals,omitempty"`

	// AirlineNames maps carrier codes to display names
	AirlineNames map[string]string `json:"airline_names,omitempty"`

	// Metadata records how the search executed
	Metadata SearchMetadata `json:"metadata"`
}

// CachedSearch is the cache value for an "anywhere" search. Results holds
// the raw priced offers; ranking, filtering, and upgrade analysis are pure
// and recomputed on every hit.
type CachedSearch struct {
	Results      CabinResults             `json:"results"`
	Deals        map[string]*PriceMetrics `json:"deals,omitempty"`
	AirlineNames map[string]string        `json:"airline_names,omitempty"`
}
