package http

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/farescout/fare-discovery-engine/internal/adapter/http/middleware"
	"github.com/farescout/fare-discovery-engine/internal/adapter/http/response"
	"github.com/farescout/fare-discovery-engine/internal/domain"
	"github.com/farescout/fare-discovery-engine/internal/ratelimit"
	"github.com/farescout/fare-discovery-engine/internal/usecase"
)

// Rate-limit messages keyed by the denying scope.
const (
	msgDailyLimitReached = "daily search limit reached, try again tomorrow"
	msgMonthlyQuotaSpent = "monthly upstream quota exhausted, resets on the 1st"
)

// SearchHandler handles HTTP requests for fare discovery endpoints.
type SearchHandler struct {
	useCase usecase.FareSearchUseCase
	gate    *ratelimit.Gate
}

// NewSearchHandler creates a new SearchHandler with the given use case and
// admission gate. The gate serves the limits endpoint directly.
func NewSearchHandler(uc usecase.FareSearchUseCase, gate *ratelimit.Gate) *SearchHandler {
	return &SearchHandler{
		useCase: uc,
		gate:    gate,
	}
}

// SearchAnywhere handles POST /api/v1/search/anywhere
//
// @Summary Search fares to anywhere
// @Description Discover cheap destinations from an origin and price them across cabin classes
// @Tags search
// @Accept json
// @Produce json
// @Param X-Session-Token header string false "Client session token for rate limiting"
// @Param request body SearchAnywhereRequest true "Search parameters (all optional)"
// @Success 200 {object} SearchResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error or upstream rejection"
// @Failure 429 {object} response.ErrorDetail "Rate limit exceeded"
// @Failure 503 {object} response.ErrorDetail "Fare provider unavailable"
// @Failure 504 {object} response.ErrorDetail "Search timed out"
// @Router /api/v1/search/anywhere [post]
func (h *SearchHandler) SearchAnywhere(c echo.Context) error {
	var req SearchAnywhereRequest

	// Bind request body
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	// Validate request
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	// Convert to domain types
	searchReq := ToSearchRequest(&req)
	opts := ToSearchOptions(&req)
	identity := middleware.GetIdentity(c)

	// Call use case with request context
	result, err := h.useCase.Search(c.Request().Context(), searchReq, opts, identity)
	if err != nil {
		return h.handleError(c, err)
	}

	// Return successful response
	return response.SearchResults(c, ToSearchResponseDTO(result))
}

// SearchFlexible handles POST /api/v1/search/flexible
//
// @Summary Find the cheapest dates to fly
// @Description Probe sampled departure dates across a month to find the cheapest time to fly to each destination
// @Tags search
// @Accept json
// @Produce json
// @Param X-Session-Token header string false "Client session token for rate limiting"
// @Param request body FlexibleRequest true "Flexible search parameters"
// @Success 200 {object} FlexibleResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error or upstream rejection"
// @Failure 429 {object} response.ErrorDetail "Rate limit exceeded"
// @Failure 503 {object} response.ErrorDetail "Fare provider unavailable"
// @Failure 504 {object} response.ErrorDetail "Search timed out"
// @Router /api/v1/search/flexible [post]
func (h *SearchHandler) SearchFlexible(c echo.Context) error {
	var req FlexibleRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	flexReq := ToFlexibleRequest(&req)
	identity := middleware.GetIdentity(c)

	result, err := h.useCase.SearchFlexible(c.Request().Context(), flexReq, identity)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, ToFlexibleResponseDTO(result))
}

// Limits handles GET /api/v1/limits
//
// @Summary Rate-limit status
// @Description Report remaining searches and upstream quota for the calling identity
// @Tags limits
// @Produce json
// @Param X-Session-Token header string false "Client session token for rate limiting"
// @Success 200 {object} LimitsResponseDTO
// @Router /api/v1/limits [get]
func (h *SearchHandler) Limits(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	return response.OK(c, ToLimitsResponseDTO(h.gate.Status(identity)))
}

// Health handles GET /health
// Simple health check endpoint.
func (h *SearchHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *SearchHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *SearchHandler) handleError(c echo.Context, err error) error {
	// Check for admission denial first; it carries the denying scope
	var rateLimitErr *domain.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return response.RateLimited(c, rateLimitMessage(rateLimitErr),
			retryAfterSeconds(rateLimitErr.ResetAt))
	}

	// Check for upstream parameter rejection (carries provider detail)
	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) && !upstreamErr.Retryable {
		return response.UpstreamRejected(c, upstreamErr.Error())
	}

	// Check for transient upstream failure
	if domain.IsUpstreamUnavailable(err) {
		return response.ServiceUnavailable(c)
	}

	// Check for context deadline exceeded (timeout)
	if errors.Is(err, context.DeadlineExceeded) {
		return response.GatewayTimeout(c)
	}

	// Check for context cancelled
	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	// Check for invalid request (domain validation)
	if domain.IsInvalidRequest(err) {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	// Default to internal server error
	return response.InternalServerError(c)
}

// rateLimitMessage picks the client-facing message for a denial. Daily
// scopes roll over at midnight UTC, the monthly quota on the 1st.
func rateLimitMessage(err *domain.RateLimitError) string {
	if err.Scope == domain.ScopeMonthly {
		return msgMonthlyQuotaSpent
	}
	return msgDailyLimitReached
}

// retryAfterSeconds converts a window reset time to Retry-After seconds.
func retryAfterSeconds(resetAt time.Time) int {
	return int(time.Until(resetAt).Seconds())
}
