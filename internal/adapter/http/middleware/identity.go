package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/farescout/fare-discovery-engine/internal/ratelimit"
)

const (
	// SessionTokenHeader is the HTTP header clients use to identify a session.
	SessionTokenHeader = "X-Session-Token"
	// identityKey is the context key for the resolved client identity.
	identityKey = "client_identity"
)

// ClientIdentity returns middleware that resolves the calling identity for
// rate-limit admission. The session token comes from the X-Session-Token
// header and may be empty (anonymous clients); the IP comes from echo's
// RealIP, which honors X-Forwarded-For and X-Real-IP.
func ClientIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}

			c.Set(identityKey, ratelimit.Identity{
				SessionToken: c.Request().Header.Get(SessionTokenHeader),
				IP:           ip,
			})

			return next(c)
		}
	}
}

// GetIdentity retrieves the client identity from the echo context.
// Returns a zero identity with IP "unknown" if the middleware did not run.
func GetIdentity(c echo.Context) ratelimit.Identity {
	if id, ok := c.Get(identityKey).(ratelimit.Identity); ok {
		return id
	}
	return ratelimit.Identity{IP: "unknown"}
}
