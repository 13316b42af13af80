package ratelimit

import (
	"time"

	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/infrastructure/timeutil"
)

// Identity names the caller for admission purposes. SessionToken may be
// empty (anonymous clients); IP should always be set by the HTTP layer.
type Identity struct {
	SessionToken string
	IP           string
}

// Config holds the gate's ceilings.
type Config struct {
	// SessionDailyLimit caps searches per session token per UTC day.
	SessionDailyLimit int

	// IPDailyLimit caps searches per client IP per UTC day.
	IPDailyLimit int

	// MonthlyCallLimit caps total upstream calls per UTC month,
	// process-wide.
	MonthlyCallLimit int
}

// ScopeStatus reports one admission scope's state for the limits endpoint.
type ScopeStatus struct {
	Scope     domain.RateLimitScope `json:"scope"`
	Limit     int                   `json:"limit"`
	Remaining int                   `json:"remaining"`
	ResetAt   time.Time             `json:"reset_at"`
}

// Gate composes the three admission ceilings. AdmitSearch guards the
// per-identity daily search counts; ReserveCalls guards the monthly
// upstream quota. Both run before any network activity.
type Gate struct {
	cfg     Config
	session *KeyedCounters
	ip      *KeyedCounters
	monthly Counter
}

// NewGate creates a gate with per-identity daily windows and a process-wide
// monthly window, all computed against the given clock.
func NewGate(cfg Config, clock timeutil.Clock) *Gate {
	return &Gate{
		cfg: cfg,
		session: NewKeyedCounters(func() Counter {
			return NewDailyCounter(cfg.SessionDailyLimit, clock)
		}),
		ip: NewKeyedCounters(func() Counter {
			return NewDailyCounter(cfg.IPDailyLimit, clock)
		}),
		monthly: NewMonthlyCounter(cfg.MonthlyCallLimit, clock),
	}
}

// AdmitSearch records one search against the identity's daily ceilings.
// The session counter applies only when a token is present; the IP counter
// always applies. Either denial blocks the search with a RateLimitError
// carrying the denying scope and its reset time.
func (g *Gate) AdmitSearch(id Identity) error {
	if id.SessionToken != "" {
		counter := g.session.Get(id.SessionToken)
		if !counter.Allow(1) {
			return domain.NewRateLimitError(domain.ScopeSession, counter.Limit(), counter.ResetAt())
		}
	}

	counter := g.ip.Get(id.IP)
	if !counter.Allow(1) {
		return domain.NewRateLimitError(domain.ScopeIP, counter.Limit(), counter.ResetAt())
	}
	return nil
}

// ReserveCalls records n upstream calls against the monthly quota before
// they are issued. Denial fails the search with a monthly-scope error.
func (g *Gate) ReserveCalls(n int) error {
	if !g.monthly.Allow(n) {
		return domain.NewRateLimitError(domain.ScopeMonthly, g.monthly.Limit(), g.monthly.ResetAt())
	}
	return nil
}

// TryReserveCalls is ReserveCalls for best-effort stages: a denial skips
// the stage instead of failing the search.
func (g *Gate) TryReserveCalls(n int) bool {
	return g.monthly.Allow(n)
}

// MonthlyRemaining reports how many upstream calls the quota still accepts.
func (g *Gate) MonthlyRemaining() int {
	return g.monthly.Remaining()
}

// Status reports every scope's state for the calling identity. The session
// scope is omitted when no token is present.
func (g *Gate) Status(id Identity) []ScopeStatus {
	var statuses []ScopeStatus

	if id.SessionToken != "" {
		counter := g.session.Get(id.SessionToken)
		statuses = append(statuses, ScopeStatus{
			Scope:     domain.ScopeSession,
			Limit:     counter.Limit(),
			Remaining: counter.Remaining(),
			ResetAt:   counter.ResetAt(),
		})
	}

	ipCounter := g.ip.Get(id.IP)
	statuses = append(statuses, ScopeStatus{
		Scope:     domain.ScopeIP,
		Limit:     ipCounter.Limit(),
		Remaining: ipCounter.Remaining(),
		ResetAt:   ipCounter.ResetAt(),
	})

	statuses = append(statuses, ScopeStatus{
		Scope:     domain.ScopeMonthly,
		Limit:     g.monthly.Limit(),
		Remaining: g.monthly.Remaining(),
		ResetAt:   g.monthly.ResetAt(),
	})

	return statuses
}
