// Package amadeus implements the FareSource port against the Amadeus
// Self-Service REST API. All calls pass through a shared rate limiter and a
// cached OAuth2 token; provider failures are mapped onto the domain error
// taxonomy so callers never handle raw transport errors.
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/infrastructure/logger"
	"github.com/farescout/fare-discovery-engine/internal/infrastructure/timeutil"
)

// tokenExpirySlack is subtracted from the advertised token lifetime so a
// token is never used within seconds of expiring mid-request.
const tokenExpirySlack = 30 * time.Second

// Config holds the upstream client configuration.
type Config struct {
	// BaseURL is the provider API root, e.g. https://test.api.amadeus.com
	BaseURL string

	// APIKey and APISecret are the OAuth2 client credentials
	APIKey    string
	APISecret string

	// Timeout bounds each individual HTTP request
	Timeout time.Duration

	// RPS and Burst configure the outbound request rate ceiling
	RPS   float64
	Burst int
}

// Client is the concrete FareSource backed by the provider REST API.
// It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiSecret  string
	limiter    *rate.Limiter
	clock      timeutil.Clock
	log        *logger.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

var _ domain.FareSource = (*Client)(nil)

// Option customizes the client, mainly for tests.
type Option func(*Client)

// WithClock overrides the clock used for token expiry bookkeeping.
func WithClock(clock timeutil.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a provider client from the given configuration.
func NewClient(cfg Config, log *logger.Logger, opts ...Option) *Client {
	if log == nil {
		log = logger.Nop()
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		clock:      timeutil.NewRealClock(),
		log:        log.WithContext("component", "upstream"),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Discover returns cheap candidate destinations from the origin.
func (c *Client) Discover(ctx context.Context, query domain.DiscoveryQuery) ([]domain.DestinationCandidate, error) {
	params := url.Values{}
	params.Set("origin", query.Origin)
	if query.DepartureDate != "" {
		params.Set("departureDate", query.DepartureDate)
	}
	if query.MaxPrice > 0 {
		params.Set("maxPrice", strconv.Itoa(query.MaxPrice))
	}

	var resp destinationsResponse
	if err := c.get(ctx, "flight-destinations", "/v1/shopping/flight-destinations", params, &resp); err != nil {
		return nil, err
	}
	return normalizeDestinations(resp.Data), nil
}

// DirectDestinations returns the IATA codes reachable nonstop from the origin.
func (c *Client) DirectDestinations(ctx context.Context, origin string) ([]string, error) {
	params := url.Values{}
	params.Set("departureAirportCode", origin)

	var resp directDestinationsResponse
	if err := c.get(ctx, "direct-destinations", "/v1/airport/direct-destinations", params, &resp); err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(resp.Data))
	for _, d := range resp.Data {
		if d.IataCode != "" {
			codes = append(codes, strings.ToUpper(d.IataCode))
		}
	}
	return codes, nil
}

// SearchOffers returns live offers for one (route, date, cabin) query.
func (c *Client) SearchOffers(ctx context.Context, query domain.OffersQuery) ([]domain.FlightOffer, error) {
	params := url.Values{}
	params.Set("originLocationCode", query.Origin)
	params.Set("destinationLocationCode", query.Destination)
	params.Set("departureDate", query.DepartureDate)
	if query.ReturnDate != "" {
		params.Set("returnDate", query.ReturnDate)
	}
	params.Set("adults", strconv.Itoa(query.Adults))
	params.Set("travelClass", string(query.Cabin))
	if query.Currency != "" {
		params.Set("currencyCode", query.Currency)
	}
	if query.MaxResults > 0 {
		params.Set("max", strconv.Itoa(query.MaxResults))
	}
	if query.NonstopOnly {
		params.Set("nonStop", "true")
	}
	if query.MaxPrice > 0 {
		params.Set("maxPrice", strconv.Itoa(query.MaxPrice))
	}

	var resp offersResponse
	if err := c.get(ctx, "flight-offers", "/v2/shopping/flight-offers", params, &resp); err != nil {
		return nil, err
	}
	return normalizeOffers(resp.Data, c.log), nil
}

// PriceMetrics returns historical price quartiles for a route.
func (c *Client) PriceMetrics(ctx context.Context, query domain.MetricsQuery) (*domain.PriceMetrics, error) {
	params := url.Values{}
	params.Set("originIataCode", query.Origin)
	params.Set("destinationIataCode", query.Destination)
	params.Set("departureDate", query.DepartureDate)

	var resp metricsResponse
	if err := c.get(ctx, "price-metrics", "/v1/analytics/itinerary-price-metrics", params, &resp); err != nil {
		return nil, err
	}

	metrics := normalizeMetrics(resp)
	if metrics == nil {
		return nil, domain.NewUpstreamRejected("price-metrics", http.StatusOK, "no price history for route")
	}
	return metrics, nil
}

// AirlineNames resolves carrier codes to display names in one batch call.
func (c *Client) AirlineNames(ctx context.Context, codes []string) (map[string]string, error) {
	if len(codes) == 0 {
		return map[string]string{}, nil
	}

	params := url.Values{}
	params.Set("airlineCodes", strings.Join(codes, ","))

	var resp airlinesResponse
	if err := c.get(ctx, "airlines", "/v1/reference-data/airlines", params, &resp); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(resp.Data))
	for _, a := range resp.Data {
		if a.IataCode == "" {
			continue
		}
		name := a.BusinessName
		if name == "" {
			name = a.CommonName
		}
		if name == "" {
			name = a.IataCode
		}
		names[strings.ToUpper(a.IataCode)] = name
	}
	return names, nil
}

// get performs a rate-limited, authenticated GET and decodes the response
// into dest. All failure modes are mapped onto the domain error taxonomy.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.NewUpstreamUnavailable(op, 0, err)
	}

	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.NewUpstreamUnavailable(op, 0, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	start := c.clock.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Str("op", op).Err(err).Msg("upstream request failed")
		return domain.NewUpstreamUnavailable(op, 0, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("elapsed", c.clock.Now().Sub(start)).
		Msg("upstream call")

	if resp.StatusCode != http.StatusOK {
		return c.mapStatusError(op, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return domain.NewUpstreamUnavailable(op, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// mapStatusError converts a non-200 response into the domain taxonomy:
// 5xx and 429 are retryable, other 4xx carry the provider's detail and
// are permanent.
func (c *Client) mapStatusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var errBody errorResponse
	_ = json.Unmarshal(body, &errBody)
	detail := errBody.detail()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		upErr := domain.NewUpstreamUnavailable(op, resp.StatusCode, errors.New("provider throttled request"))
		upErr.Detail = "provider rate limit reached"
		return upErr
	case resp.StatusCode >= http.StatusInternalServerError:
		return domain.NewUpstreamUnavailable(op, resp.StatusCode, fmt.Errorf("server error: %s", strings.TrimSpace(string(body))))
	default:
		if detail == "" {
			detail = strings.TrimSpace(string(body))
		}
		return domain.NewUpstreamRejected(op, resp.StatusCode, detail)
	}
}

// token returns a valid bearer token, fetching a fresh one when the cached
// token is missing or inside the expiry slack.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.accessToken != "" && now.Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.apiKey)
	form.Set("client_secret", c.apiSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", domain.NewUpstreamUnavailable("oauth-token", 0, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.NewUpstreamUnavailable("oauth-token", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", domain.NewUpstreamUnavailable("oauth-token", resp.StatusCode,
			fmt.Errorf("token request failed: %s", strings.TrimSpace(string(body))))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", domain.NewUpstreamUnavailable("oauth-token", resp.StatusCode, fmt.Errorf("decode token: %w", err))
	}
	if token.AccessToken == "" {
		return "", domain.NewUpstreamUnavailable("oauth-token", resp.StatusCode, errors.New("empty access token"))
	}

	lifetime := time.Duration(token.ExpiresIn) * time.Second
	if lifetime > tokenExpirySlack {
		lifetime -= tokenExpirySlack
	}

	c.accessToken = token.AccessToken
	c.tokenExpiry = now.Add(lifetime)
	c.log.Debug().Time("expires_at", c.tokenExpiry).Msg("refreshed access token")

	return c.accessToken, nil
}
