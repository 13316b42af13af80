package ratelimit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/infrastructure/timeutil"
)

func testGate(cfg Config) (*Gate, *timeutil.MockClock) {
	clock := timeutil.NewMockClock(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	return NewGate(cfg, clock), clock
}

func TestGate_AdmitSearch_SessionDenial(t *testing.T) {
	gate, _ := testGate(Config{SessionDailyLimit: 2, IPDailyLimit: 10, MonthlyCallLimit: 100})
	id := Identity{SessionToken: "tok-1", IP: "10.0.0.1"}

	require.NoError(t, gate.AdmitSearch(id))
	require.NoError(t, gate.AdmitSearch(id))

	err := gate.AdmitSearch(id)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRateLimitExceeded)

	var rle *domain.RateLimitError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, domain.ScopeSession, rle.Scope)
	assert.Equal(t, 2, rle.Limit)
	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), rle.ResetAt)
}

func TestGate_AdmitSearch_IPDenial(t *testing.T) {
	gate, _ := testGate(Config{SessionDailyLimit: 100, IPDailyLimit: 1, MonthlyCallLimit: 100})

	// Two sessions behind one IP: the IP ceiling still binds.
	require.NoError(t, gate.AdmitSearch(Identity{SessionToken: "tok-1", IP: "10.0.0.1"}))

	err := gate.AdmitSearch(Identity{SessionToken: "tok-2", IP: "10.0.0.1"})
	var rle *domain.RateLimitError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, domain.ScopeIP, rle.Scope)
}

func TestGate_AdmitSearch_AnonymousUsesOnlyIPLimit(t *testing.T) {
	gate, _ := testGate(Config{SessionDailyLimit: 1, IPDailyLimit: 3, MonthlyCallLimit: 100})
	id := Identity{IP: "10.0.0.1"}

	// No session token: the session ceiling never engages.
	require.NoError(t, gate.AdmitSearch(id))
	require.NoError(t, gate.AdmitSearch(id))
	require.NoError(t, gate.AdmitSearch(id))
	assert.Error(t, gate.AdmitSearch(id))
}

func TestGate_AdmitSearch_ResetsNextDay(t *testing.T) {
	gate, clock := testGate(Config{SessionDailyLimit: 10, IPDailyLimit: 1, MonthlyCallLimit: 100})
	id := Identity{IP: "10.0.0.1"}

	require.NoError(t, gate.AdmitSearch(id))
	require.Error(t, gate.AdmitSearch(id))

	clock.AdvanceDays(1)
	assert.NoError(t, gate.AdmitSearch(id))
}

func TestGate_ReserveCalls(t *testing.T) {
	gate, clock := testGate(Config{SessionDailyLimit: 10, IPDailyLimit: 10, MonthlyCallLimit: 8})

	require.NoError(t, gate.ReserveCalls(6))

	err := gate.ReserveCalls(3)
	require.Error(t, err)
	var rle *domain.RateLimitError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, domain.ScopeMonthly, rle.Scope)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), rle.ResetAt)

	assert.Equal(t, 2, gate.MonthlyRemaining(), "denied reservation consumes nothing")

	clock.Set(time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, gate.ReserveCalls(8), "quota resets on the 1st")
}

func TestGate_TryReserveCalls(t *testing.T) {
	gate, _ := testGate(Config{SessionDailyLimit: 10, IPDailyLimit: 10, MonthlyCallLimit: 5})

	assert.True(t, gate.TryReserveCalls(5))
	assert.False(t, gate.TryReserveCalls(1), "best-effort denial, no error")
}

func TestGate_Status(t *testing.T) {
	gate, _ := testGate(Config{SessionDailyLimit: 20, IPDailyLimit: 10, MonthlyCallLimit: 2000})
	id := Identity{SessionToken: "tok-1", IP: "10.0.0.1"}

	require.NoError(t, gate.AdmitSearch(id))
	require.NoError(t, gate.ReserveCalls(7))

	statuses := gate.Status(id)
	require.Len(t, statuses, 3)

	byScope := make(map[domain.RateLimitScope]ScopeStatus, len(statuses))
	for _, s := range statuses {
		byScope[s.Scope] = s
	}

	assert.Equal(t, 19, byScope[domain.ScopeSession].Remaining)
	assert.Equal(t, 9, byScope[domain.ScopeIP].Remaining)
	assert.Equal(t, 1993, byScope[domain.ScopeMonthly].Remaining)

	anon := gate.Status(Identity{IP: "10.0.0.2"})
	require.Len(t, anon, 2, "anonymous identity has no session scope")
}
