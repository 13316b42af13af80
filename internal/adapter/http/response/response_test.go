package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestContext creates an echo context writing to a recorder.
func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var detail ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	return detail
}

func TestErrorBuilders(t *testing.T) {
	tests := []struct {
		name       string
		write      func(c echo.Context) error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "bad request",
			write:      func(c echo.Context) error { return BadRequest(c, "origin is malformed") },
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidRequest,
			wantMsg:    "origin is malformed",
		},
		{
			name:       "invalid request body",
			write:      InvalidRequestBody,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidRequest,
			wantMsg:    MsgInvalidRequestBody,
		},
		{
			name:       "validation with message",
			write:      func(c echo.Context) error { return ValidationErrorWithMessage(c, "top_n out of range") },
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeValidationError,
			wantMsg:    "top_n out of range",
		},
		{
			name:       "upstream rejected",
			write:      func(c echo.Context) error { return UpstreamRejected(c, "no offers for this route") },
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeUpstreamRejected,
			wantMsg:    "no offers for this route",
		},
		{
			name:       "service unavailable",
			write:      ServiceUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   CodeServiceUnavailable,
			wantMsg:    MsgServiceUnavailable,
		},
		{
			name:       "gateway timeout",
			write:      GatewayTimeout,
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   CodeTimeout,
			wantMsg:    MsgTimeout,
		},
		{
			name:       "request cancelled",
			write:      RequestCancelled,
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   CodeTimeout,
			wantMsg:    MsgRequestCancelled,
		},
		{
			name:       "internal error",
			write:      InternalServerError,
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeInternalError,
			wantMsg:    MsgInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext()
			require.NoError(t, tt.write(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
			detail := decodeDetail(t, rec)
			assert.Equal(t, tt.wantCode, detail.Code)
			assert.Equal(t, tt.wantMsg, detail.Message)
		})
	}
}

func TestValidationError_Details(t *testing.T) {
	c, rec := newTestContext()

	details := map[string]string{
		"origin": "origin is required",
		"month":  "month must be in YYYY-MM format",
	}
	require.NoError(t, ValidationError(c, details))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	detail := decodeDetail(t, rec)
	assert.Equal(t, CodeValidationError, detail.Code)
	assert.Equal(t, MsgValidationFailed, detail.Message)
	assert.Equal(t, details, detail.Details)
}

func TestRateLimited(t *testing.T) {
	c, rec := newTestContext()

	require.NoError(t, RateLimited(c, "daily search limit reached, try again tomorrow", 3600))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3600", rec.Header().Get(RetryAfterHeader))

	detail := decodeDetail(t, rec)
	assert.Equal(t, CodeRateLimited, detail.Code)
	assert.Equal(t, "daily search limit reached, try again tomorrow", detail.Message)
}

func TestRateLimited_ClampsRetryAfter(t *testing.T) {
	c, rec := newTestContext()

	require.NoError(t, RateLimited(c, "quota exhausted", -30))

	assert.Equal(t, "1", rec.Header().Get(RetryAfterHeader))
}

func TestHealth(t *testing.T) {
	c, rec := newTestContext()

	require.NoError(t, Health(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestEnvelopes(t *testing.T) {
	success := Success(map[string]string{"hello": "world"})
	assert.True(t, success.Success)
	assert.Nil(t, success.Error)

	failure := Failure(CodeInternalError, MsgInternalError, nil)
	assert.False(t, failure.Success)
	require.NotNil(t, failure.Error)
	assert.Equal(t, CodeInternalError, failure.Error.Code)
}
