package amadeus

// Wire types for the provider REST API. Only the fields the engine reads
// are mapped; everything else in the payloads is ignored.

// tokenResponse is the OAuth2 client-credentials grant response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// wirePrice carries a price as the decimal strings the API uses.
type wirePrice struct {
	Total      string `json:"total,omitempty"`
	GrandTotal string `json:"grandTotal,omitempty"`
	Currency   string `json:"currency,omitempty"`
}

// destinationsResponse is the flight-destinations (inspiration) payload.
type destinationsResponse struct {
	Data []wireDestination `json:"data"`
}

type wireDestination struct {
	Destination   string    `json:"destination"`
	DepartureDate string    `json:"departureDate,omitempty"`
	ReturnDate    string    `json:"returnDate,omitempty"`
	Price         wirePrice `json:"price"`
}

// directDestinationsResponse is the airport/direct-destinations payload.
type directDestinationsResponse struct {
	Data []struct {
		IataCode string `json:"iataCode"`
	} `json:"data"`
}

// offersResponse is the flight-offers search payload.
type offersResponse struct {
	Data []wireOffer `json:"data"`
}

type wireOffer struct {
	Itineraries []wireItinerary `json:"itineraries"`
	Price       wirePrice       `json:"price"`
}

type wireItinerary struct {
	// Duration is an ISO 8601 duration, e.g. "PT11H30M".
	Duration string        `json:"duration"`
	Segments []wireSegment `json:"segments"`
}

type wireSegment struct {
	Departure   wireEndpoint `json:"departure"`
	Arrival     wireEndpoint `json:"arrival"`
	CarrierCode string       `json:"carrierCode"`
	Number      string       `json:"number"`
}

type wireEndpoint struct {
	IataCode string `json:"iataCode"`
	// At is an ISO 8601 timestamp without zone, e.g. "2026-10-15T08:30:00".
	At string `json:"at"`
}

// metricsResponse is the itinerary-price-metrics payload.
type metricsResponse struct {
	Data []wireMetricsRecord `json:"data"`
}

type wireMetricsRecord struct {
	PriceMetrics []wireQuartile `json:"priceMetrics"`
}

type wireQuartile struct {
	Amount string `json:"amount"`
	// QuartileRanking is one of MINIMUM, FIRST, MEDIUM, THIRD, MAXIMUM.
	QuartileRanking string `json:"quartileRanking"`
}

// airlinesResponse is the reference-data/airlines payload.
type airlinesResponse struct {
	Data []struct {
		IataCode     string `json:"iataCode"`
		BusinessName string `json:"businessName"`
		CommonName   string `json:"commonName"`
	} `json:"data"`
}

// errorResponse is the provider's error envelope.
type errorResponse struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// detail returns the most specific error description available.
func (e *errorResponse) detail() string {
	if len(e.Errors) == 0 {
		return ""
	}
	first := e.Errors[0]
	if first.Detail != "" {
		return first.Detail
	}
	return first.Title
}
