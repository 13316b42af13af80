// Package integration exercises the fully wired fare discovery stack:
// HTTP handlers, the search use case, the admission gate, and the result
// cache, backed by a configurable fake upstream.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	httpAdapter "github.com/farescout/fare-discovery-engine/internal/adapter/http"
	"github.com/farescout/fare-discovery-engine/internal/adapter/http/middleware"
	"github.com/farescout/fare-discovery-engine/internal/cache"
	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/infrastructure/logger"
	"github.com/farescout/fare-discovery-engine/internal/infrastructure/timeutil"
	"github.com/farescout/fare-discovery-engine/internal/ratelimit"
	"github.com/farescout/fare-discovery-engine/internal/usecase"
	"github.com/farescout/fare-discovery-engine/test/mock"
)

// FrozenNow is the mock clock time every test environment starts at.
// Defaulted departure dates land 30 days later, on 2026-10-01.
const FrozenNow = "2026-09-01T12:00:00Z"

// DefaultSessionToken identifies the test client unless a test overrides it.
const DefaultSessionToken = "session-integration"

// Options tunes the wired stack for one test environment. Zero values fall
// back to generous defaults so only the knob under test needs setting.
type Options struct {
	Limits          ratelimit.Config
	CacheTTL        time.Duration
	GlobalTimeout   time.Duration
	UpstreamTimeout time.Duration
	MaxConcurrent   int
}

// Env is one fully wired test environment.
type Env struct {
	Echo    *echo.Echo
	Source  *mock.FareSource
	Gate    *ratelimit.Gate
	Cache   cache.ResultCache
	Clock   *timeutil.MockClock
	UseCase usecase.FareSearchUseCase
}

// NewEnv wires the stack around the given fake upstream with default options.
func NewEnv(source *mock.FareSource) *Env {
	return NewEnvWithOptions(source, Options{})
}

// NewEnvWithOptions wires the stack with custom rate limits and timeouts.
func NewEnvWithOptions(source *mock.FareSource, opts Options) *Env {
	if opts.Limits == (ratelimit.Config{}) {
		opts.Limits = ratelimit.Config{
			SessionDailyLimit: 50,
			IPDailyLimit:      50,
			MonthlyCallLimit:  5000,
		}
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = 30 * time.Minute
	}
	if opts.GlobalTimeout == 0 {
		opts.GlobalTimeout = 10 * time.Second
	}
	if opts.UpstreamTimeout == 0 {
		opts.UpstreamTimeout = 5 * time.Second
	}
	if opts.MaxConcurrent == 0 {
		opts.MaxConcurrent = 4
	}

	clock := timeutil.NewMockClockFromString(FrozenNow)
	gate := ratelimit.NewGate(opts.Limits, clock)
	resultCache := cache.NewMemoryCache(cache.MemoryConfig{
		TTL:        opts.CacheTTL,
		MaxEntries: 64,
	}, clock)

	uc := usecase.NewFareSearchUseCase(source, gate, resultCache, clock, logger.Nop(), &usecase.Config{
		GlobalTimeout:   opts.GlobalTimeout,
		UpstreamTimeout: opts.UpstreamTimeout,
		MaxConcurrent:   opts.MaxConcurrent,
		Defaults: domain.SearchDefaults{
			Origin: "YVR",
			Cabins: []domain.CabinClass{domain.CabinEconomy, domain.CabinBusiness},
			TopN:   10,
		},
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.ClientIdentity())

	handler := httpAdapter.NewSearchHandler(uc, gate)
	httpAdapter.RegisterRoutes(e, handler)

	return &Env{
		Echo:    e,
		Source:  source,
		Gate:    gate,
		Cache:   resultCache,
		Clock:   clock,
		UseCase: uc,
	}
}

// Identity returns the rate limit identity the default test requests carry.
// httptest requests resolve to client IP 192.0.2.1.
func (env *Env) Identity() ratelimit.Identity {
	return ratelimit.Identity{SessionToken: DefaultSessionToken, IP: "192.0.2.1"}
}

// Do executes one request against the wired server. An empty session token
// sends an anonymous request.
func (env *Env) Do(method, path string, body interface{}, sessionToken string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if sessionToken != "" {
		req.Header.Set(middleware.SessionTokenHeader, sessionToken)
	}

	rec := httptest.NewRecorder()
	env.Echo.ServeHTTP(rec, req)
	return rec
}

// Search posts an anywhere search with the default session token.
func (env *Env) Search(body interface{}) *httptest.ResponseRecorder {
	return env.SearchAs(DefaultSessionToken, body)
}

// SearchAs posts an anywhere search for a specific session token.
func (env *Env) SearchAs(sessionToken string, body interface{}) *httptest.ResponseRecorder {
	return env.Do(http.MethodPost, "/api/v1/search/anywhere", body, sessionToken)
}

// Flexible posts a flexible-date search with the default session token.
func (env *Env) Flexible(body interface{}) *httptest.ResponseRecorder {
	return env.Do(http.MethodPost, "/api/v1/search/flexible", body, DefaultSessionToken)
}

// Limits fetches the rate limit status for the given session token.
func (env *Env) Limits(sessionToken string) *httptest.ResponseRecorder {
	return env.Do(http.MethodGet, "/api/v1/limits", nil, sessionToken)
}

// mustLimits builds a gate configuration from the three ceilings.
func mustLimits(session, ip, monthly int) ratelimit.Config {
	return ratelimit.Config{
		SessionDailyLimit: session,
		IPDailyLimit:      ip,
		MonthlyCallLimit:  monthly,
	}
}

// testDayOfDate extracts the day of month from a YYYY-MM-DD string,
// returning 0 when it does not parse.
func testDayOfDate(date string) int {
	parsed, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return 0
	}
	return parsed.Day()
}
