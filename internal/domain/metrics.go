package domain

// DealLabel grades a live price against historical quartiles for the route.
type DealLabel string

// Deal labels, best first.
const (
	DealGreat        DealLabel = "Great Deal"
	DealGood         DealLabel = "Good Price"
	DealAverage      DealLabel = "Average"
	DealAboveAverage DealLabel = "Above Average"
	DealUnknown      DealLabel = "N/A"
)

// PriceMetrics holds historical price quartiles for a route and date,
// as reported by the upstream analytics call. Absent thresholds are nil.
type PriceMetrics struct {
	// FirstQuartile is the price below which the cheapest 25% of fares fall
	FirstQuartile *float64 `json:"first_quartile,omitempty"`

	// Median is the historical median price
	Median *float64 `json:"median,omitempty"`

	// ThirdQuartile is the price below which 75% of fares fall
	ThirdQuartile *float64 `json:"third_quartile,omitempty"`
}

// Label grades a price against the quartile thresholds. A nil receiver or a
// metrics record with no thresholds yields DealUnknown, meaning "no data" --
// downstream must not read it as "bad deal".
func (m *PriceMetrics) Label(price float64) DealLabel {
	if m == nil {
		return DealUnknown
	}
	if m.FirstQuartile != nil && price <= *m.FirstQuartile {
		return DealGreat
	}
	if m.Median != nil && price <= *m.Median {
		return DealGood
	}
	if m.ThirdQuartile != nil && price <= *m.ThirdQuartile {
		return DealAverage
	}
	if m.ThirdQuartile != nil {
		return DealAboveAverage
	}
	return DealUnknown
}
