package amadeus

import (
	"strconv"
	"strings"
	"time"

	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/infrastructure/logger"
)

// segmentTimeLayout is the zone-less timestamp format the provider uses
// for departure and arrival times.
const segmentTimeLayout = "2006-01-02T15:04:05"

// normalizeDestinations converts wire destination records into domain
// candidates. Records without a destination code are dropped; an unparseable
// price leaves the advisory price at zero rather than dropping the record.
func normalizeDestinations(records []wireDestination) []domain.DestinationCandidate {
	candidates := make([]domain.DestinationCandidate, 0, len(records))
	for _, rec := range records {
		if rec.Destination == "" {
			continue
		}
		price, _ := parsePrice(rec.Price.Total)
		candidates = append(candidates, domain.DestinationCandidate{
			Destination:   strings.ToUpper(rec.Destination),
			Price:         price,
			DepartureDate: rec.DepartureDate,
			ReturnDate:    rec.ReturnDate,
		})
	}
	return candidates
}

// normalizeOffers converts wire offers into domain offers, skipping records
// that are missing itineraries or segments, or whose price or timestamps
// cannot be parsed.
func normalizeOffers(records []wireOffer, log *logger.Logger) []domain.FlightOffer {
	offers := make([]domain.FlightOffer, 0, len(records))
	for _, rec := range records {
		offer, ok := normalizeOffer(rec)
		if !ok {
			log.Debug().Msg("skipping malformed offer record")
			continue
		}
		offers = append(offers, offer)
	}
	return offers
}

func normalizeOffer(rec wireOffer) (domain.FlightOffer, bool) {
	if len(rec.Itineraries) == 0 {
		return domain.FlightOffer{}, false
	}

	outbound := rec.Itineraries[0]
	if len(outbound.Segments) == 0 {
		return domain.FlightOffer{}, false
	}

	amount, err := parsePrice(rec.Price.GrandTotal)
	if err != nil {
		return domain.FlightOffer{}, false
	}

	first := outbound.Segments[0]
	last := outbound.Segments[len(outbound.Segments)-1]
	if last.Arrival.IataCode == "" {
		return domain.FlightOffer{}, false
	}

	departure, err := parseSegmentTime(first.Departure.At)
	if err != nil {
		return domain.FlightOffer{}, false
	}

	var returnTime time.Time
	if len(rec.Itineraries) > 1 && len(rec.Itineraries[1].Segments) > 0 {
		returnTime, err = parseSegmentTime(rec.Itineraries[1].Segments[0].Departure.At)
		if err != nil {
			return domain.FlightOffer{}, false
		}
	}

	return domain.FlightOffer{
		Destination:   strings.ToUpper(last.Arrival.IataCode),
		Price:         domain.PriceInfo{Amount: amount, Currency: rec.Price.Currency},
		DepartureTime: departure,
		ReturnTime:    returnTime,
		Carriers:      uniqueCarriers(outbound.Segments),
		Stops:         len(outbound.Segments) - 1,
		Duration:      domain.NewDurationInfo(parseISODuration(outbound.Duration)),
	}, true
}

// normalizeMetrics extracts the FIRST/MEDIUM/THIRD quartiles from a metrics
// payload. Returns nil when the payload carries no usable thresholds.
func normalizeMetrics(resp metricsResponse) *domain.PriceMetrics {
	if len(resp.Data) == 0 {
		return nil
	}

	metrics := &domain.PriceMetrics{}
	found := false
	for _, q := range resp.Data[0].PriceMetrics {
		amount, err := parsePrice(q.Amount)
		if err != nil {
			continue
		}
		v := amount
		switch q.QuartileRanking {
		case "FIRST":
			metrics.FirstQuartile = &v
			found = true
		case "MEDIUM":
			metrics.Median = &v
			found = true
		case "THIRD":
			metrics.ThirdQuartile = &v
			found = true
		}
	}

	if !found {
		return nil
	}
	return metrics
}

// uniqueCarriers returns the carrier codes of the segments in order of first
// appearance, deduplicated.
func uniqueCarriers(segments []wireSegment) []string {
	seen := make(map[string]struct{}, len(segments))
	carriers := make([]string, 0, len(segments))
	for _, seg := range segments {
		code := strings.ToUpper(seg.CarrierCode)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		carriers = append(carriers, code)
	}
	return carriers
}

// parsePrice parses the provider's decimal price strings.
func parsePrice(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseSegmentTime parses a segment timestamp, accepting both the provider's
// zone-less format and full RFC 3339.
func parseSegmentTime(s string) (time.Time, error) {
	if t, err := time.Parse(segmentTimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// parseISODuration converts an ISO 8601 duration like "PT11H30M" to total
// minutes. The provider normally emits PT-form, but day components as in
// "P1DT2H" count too. Unrecognized input yields zero.
func parseISODuration(s string) int {
	s = strings.TrimPrefix(strings.ToUpper(s), "P")
	total := 0
	num := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int(r-'0')
		case r == 'D':
			total += num * 24 * 60
			num = 0
		case r == 'H':
			total += num * 60
			num = 0
		case r == 'M':
			total += num
			num = 0
		default:
			num = 0
		}
	}
	return total
}
