// Package refdata holds curated airport and airline reference data: city
// display names, same-city airport groupings, regional hub lists, and
// airport-local currencies. Pure data and functions, no I/O.
package refdata

import "strings"

// cityNames maps IATA codes to display city names.
var cityNames = map[string]string{
	// North America
	"YVR": "Vancouver", "YYC": "Calgary", "YYZ": "Toronto",
	"SFO": "San Francisco", "LAX": "Los Angeles", "SEA": "Seattle",
	"PDX": "Portland", "ORD": "Chicago", "JFK": "New York",
	"BOS": "Boston", "IAD": "Washington DC", "ATL": "Atlanta",
	"DFW": "Dallas", "MIA": "Miami", "DEN": "Denver", "MSP": "Minneapolis",
	"EWR": "Newark", "LGA": "New York", "DCA": "Washington DC",
	"OAK": "Oakland", "SJC": "San Jose", "BUR": "Burbank",
	"SNA": "Santa Ana", "ONT": "Ontario", "LGB": "Long Beach",
	"FLL": "Fort Lauderdale", "MDW": "Chicago", "DAL": "Dallas",
	"BLI": "Bellingham", "ANC": "Anchorage", "HNL": "Honolulu",
	// Europe
	"LHR": "London", "CDG": "Paris", "AMS": "Amsterdam",
	"FRA": "Frankfurt", "MUC": "Munich", "ZRH": "Zurich",
	"BCN": "Barcelona", "MAD": "Madrid", "FCO": "Rome",
	"CPH": "Copenhagen", "IST": "Istanbul", "DUB": "Dublin",
	"ORY": "Paris", "LGW": "London", "STN": "London", "LTN": "London",
	// Asia-Pacific
	"NRT": "Tokyo", "HND": "Tokyo", "ICN": "Seoul", "HKG": "Hong Kong",
	"SIN": "Singapore", "BKK": "Bangkok", "TPE": "Taipei",
	"PVG": "Shanghai", "SHA": "Shanghai", "PEK": "Beijing", "PKX": "Beijing",
	"SYD": "Sydney", "AKL": "Auckland", "MNL": "Manila", "KUL": "Kuala Lumpur",
	// Mexico/Caribbean
	"CUN": "Cancun", "MEX": "Mexico City", "PVR": "Puerto Vallarta",
	"SJD": "San Jose del Cabo", "MBJ": "Montego Bay", "AUA": "Aruba",
	// South America
	"GRU": "Sao Paulo", "GIG": "Rio de Janeiro", "CGH": "Sao Paulo",
	"BOG": "Bogota", "SCL": "Santiago", "LIM": "Lima", "EZE": "Buenos Aires",
	// Africa
	"JNB": "Johannesburg", "CPT": "Cape Town", "NBO": "Nairobi",
	"CAI": "Cairo", "ADD": "Addis Ababa",
	// Middle East
	"DXB": "Dubai", "DOH": "Doha", "AUH": "Abu Dhabi",
	"TLV": "Tel Aviv", "AMM": "Amman",
}

// sameCityPrimary maps secondary airports to the primary airport serving
// the same city, so discovery results don't list Tokyo twice.
var sameCityPrimary = map[string]string{
	"HND": "NRT", // Tokyo
	"ORY": "CDG", // Paris
	"LGW": "LHR", // London
	"STN": "LHR",
	"LTN": "LHR",
	"EWR": "JFK", // New York
	"LGA": "JFK",
	"MDW": "ORD", // Chicago
	"SJC": "SFO", // SF Bay Area
	"OAK": "SFO",
	"BUR": "LAX", // Los Angeles
	"SNA": "LAX",
	"ONT": "LAX",
	"LGB": "LAX",
	"DCA": "IAD", // Washington DC
	"FLL": "MIA", // Miami / Fort Lauderdale
	"DAL": "DFW", // Dallas
	"GIG": "GRU", // Rio / Sao Paulo
	"CGH": "GRU",
	"PKX": "PEK", // Beijing
	"SHA": "PVG", // Shanghai
}

// hubsByRegion lists curated major hubs per region, used when a search
// targets regions instead of upstream discovery.
var hubsByRegion = map[string][]string{
	"North America": {
		"SFO", "LAX", "SEA", "PDX", "YYC", "YYZ", "ORD", "JFK",
		"BOS", "IAD", "ATL", "DFW", "MIA", "DEN", "MSP",
	},
	"Europe": {
		"LHR", "CDG", "AMS", "FRA", "MUC", "ZRH", "BCN", "MAD",
		"FCO", "CPH", "IST", "DUB",
	},
	"Asia-Pacific": {
		"NRT", "HND", "ICN", "HKG", "SIN", "BKK", "TPE", "PVG",
		"SYD", "AKL",
	},
	"Mexico/Caribbean": {"CUN", "MEX", "PVR", "SJD", "MBJ", "AUA"},
	"South America":    {"GRU", "BOG", "SCL", "LIM", "EZE"},
	"Africa":           {"JNB", "CPT", "NBO", "CAI", "ADD"},
	"Middle East":      {"DXB", "DOH", "AUH", "TLV", "AMM"},
}

// regionOrder keeps hub iteration deterministic.
var regionOrder = []string{
	"North America", "Europe", "Asia-Pacific", "Mexico/Caribbean",
	"South America", "Africa", "Middle East",
}

// airportCurrency maps airports to the currency the upstream test
// environment actually prices them in, regardless of the requested code.
var airportCurrency = map[string]string{
	// Canada
	"YVR": "CAD", "YYC": "CAD", "YYZ": "CAD",
	// United States
	"SFO": "USD", "LAX": "USD", "SEA": "USD", "PDX": "USD", "ORD": "USD",
	"JFK": "USD", "BOS": "USD", "IAD": "USD", "ATL": "USD", "DFW": "USD",
	"MIA": "USD", "DEN": "USD", "MSP": "USD", "EWR": "USD", "LGA": "USD",
	"DCA": "USD", "OAK": "USD", "SJC": "USD", "BUR": "USD", "SNA": "USD",
	"ONT": "USD", "LGB": "USD", "FLL": "USD", "MDW": "USD", "DAL": "USD",
	"BLI": "USD", "ANC": "USD", "HNL": "USD",
	// Europe, eurozone
	"CDG": "EUR", "ORY": "EUR", "AMS": "EUR", "FRA": "EUR", "MUC": "EUR",
	"BCN": "EUR", "MAD": "EUR", "FCO": "EUR", "DUB": "EUR",
	// Europe, non-euro
	"LHR": "GBP", "LGW": "GBP", "STN": "GBP", "LTN": "GBP",
	"ZRH": "CHF",
	"CPH": "DKK",
	"IST": "TRY",
	// Asia-Pacific
	"NRT": "JPY", "HND": "JPY",
	"ICN": "KRW",
	"HKG": "HKD",
	"SIN": "SGD",
	"BKK": "THB",
	"TPE": "TWD",
	"PVG": "CNY", "SHA": "CNY", "PEK": "CNY", "PKX": "CNY",
	"SYD": "AUD",
	"AKL": "NZD",
	"MNL": "PHP",
	"KUL": "MYR",
	// Mexico/Caribbean
	"CUN": "MXN", "MEX": "MXN", "PVR": "MXN", "SJD": "MXN",
	"MBJ": "USD", "AUA": "USD",
	// South America
	"GRU": "BRL", "GIG": "BRL", "CGH": "BRL",
	"BOG": "COP", "SCL": "CLP", "LIM": "PEN", "EZE": "ARS",
	// Africa
	"JNB": "ZAR", "CPT": "ZAR",
	"NBO": "KES",
	"CAI": "EGP",
	"ADD": "ETB",
	// Middle East
	"DXB": "AED", "AUH": "AED",
	"DOH": "QAR",
	"TLV": "ILS",
	"AMM": "JOD",
}

// stripSuffixes are the corporate suffixes removed from airline names.
var stripSuffixes = []string{
	" D/B/A", " LTD.", " LTD", " INC.", " INC", " CORP.", " CORP",
	" CO.", " CO", " S.A.", " S.A", " SA", " AG", " GMBH",
	" LLC", " PLC", " GROUP", " HOLDINGS", " ENTERPRISES",
	" PTY", " NV", " BV", " SE",
}

// CityName returns the display city name for an IATA code, falling back to
// the code itself for airports outside the curated set.
func CityName(code string) string {
	if name, ok := cityNames[code]; ok {
		return name
	}
	return code
}

// SameCityPrimary returns the primary airport for a code. Primary airports
// map to themselves.
func SameCityPrimary(code string) string {
	if primary, ok := sameCityPrimary[code]; ok {
		return primary
	}
	return code
}

// DedupSameCity collapses secondary airports onto their primaries,
// preserving first-seen order. [NRT, HND, LHR, LGW] becomes [NRT, LHR].
func DedupSameCity(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	result := make([]string, 0, len(codes))
	for _, code := range codes {
		primary := SameCityPrimary(code)
		if seen[primary] {
			continue
		}
		seen[primary] = true
		result = append(result, primary)
	}
	return result
}

// Regions returns the known region names in display order.
func Regions() []string {
	return append([]string(nil), regionOrder...)
}

// HubDestinations returns the curated hub codes for the given regions.
// Unknown region names contribute nothing; an empty region list returns
// every hub.
func HubDestinations(regions []string) []string {
	if len(regions) == 0 {
		regions = regionOrder
	}
	var codes []string
	for _, region := range regions {
		codes = append(codes, hubsByRegion[region]...)
	}
	return codes
}

// CurrencyForAirport returns the local currency for an airport code,
// defaulting to USD.
func CurrencyForAirport(code string) string {
	if currency, ok := airportCurrency[code]; ok {
		return currency
	}
	return "USD"
}

// CleanAirlineName strips corporate suffixes and title-cases an airline
// name. Short all-caps names like "KLM" or "SAS" are preserved as-is.
func CleanAirlineName(raw string) string {
	if len(raw) <= 2 {
		return raw
	}
	name := strings.ToUpper(raw)
	for changed := true; changed; {
		changed = false
		for _, suffix := range stripSuffixes {
			if strings.HasSuffix(name, suffix) {
				name = strings.TrimRight(name[:len(name)-len(suffix)], " ")
				changed = true
			}
		}
	}
	if len(name) <= 3 {
		return name
	}
	return titleCase(name)
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(upper string) string {
	words := strings.Split(strings.ToLower(upper), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
