package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/middleware"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type capturedRequest struct {
	Method string
	Path   string
	Query  string
	UserID string
	Body   string
}

func setupGateway(t *testing.T) (*gin.Engine, *capturedRequest) {
	captured := &capturedRequest{}
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*captured = capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			UserID: r.Header.Get(middleware.HeaderUserID),
			Body:   string(body),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(backend.Close)

	proxy, err := NewProxy(backend.URL, zerolog.Nop())
	require.NoError(t, err)

	handler := NewHandler(proxy, fixedClock{now: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.RegisterRoutes(r.Group("/"))
	return r, captured
}

func gatewayRequest(r *gin.Engine, method, path string, body interface{}, userID string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGateway_ForwardsValidRequest(t *testing.T) {
	r, captured := setupGateway(t)

	body := map[string]interface{}{
		"itemId": 10,
		"start":  "2026-03-16T12:00:00Z",
		"end":    "2026-03-17T12:00:00Z",
	}
	w := gatewayRequest(r, "POST", "/bookings", body, "5")

	require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())
	assert.Equal(t, "POST", captured.Method)
	assert.Equal(t, "/bookings", captured.Path)
	assert.Equal(t, "5", captured.UserID)
	assert.Contains(t, captured.Body, `"itemId":10`)
}

func TestGateway_ForwardsQueryString(t *testing.T) {
	r, captured := setupGateway(t)

	w := gatewayRequest(r, "GET", "/bookings?state=PAST&from=0&size=5", nil, "5")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "state=PAST&from=0&size=5", captured.Query)
}

func TestGateway_RejectsUnknownState(t *testing.T) {
	r, captured := setupGateway(t)

	w := gatewayRequest(r, "GET", "/bookings?state=UNSUPPORTED_STATUS", nil, "5")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown state: UNSUPPORTED_STATUS")
	assert.Empty(t, captured.Method, "request must not reach the backend")
}

func TestGateway_RejectsMissingIdentityHeader(t *testing.T) {
	r, captured := setupGateway(t)

	w := gatewayRequest(r, "GET", "/bookings", nil, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, captured.Method)
}

func TestGateway_RejectsBookingInThePast(t *testing.T) {
	r, captured := setupGateway(t)

	body := map[string]interface{}{
		"itemId": 10,
		"start":  "2026-03-14T12:00:00Z",
		"end":    "2026-03-16T12:00:00Z",
	}
	w := gatewayRequest(r, "POST", "/bookings", body, "5")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, captured.Method)
}

func TestGateway_RejectsBookingStartAfterEnd(t *testing.T) {
	r, captured := setupGateway(t)

	body := map[string]interface{}{
		"itemId": 10,
		"start":  "2026-03-18T12:00:00Z",
		"end":    "2026-03-16T12:00:00Z",
	}
	w := gatewayRequest(r, "POST", "/bookings", body, "5")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, captured.Method)
}

func TestGateway_RejectsBadPageParams(t *testing.T) {
	r, captured := setupGateway(t)

	w := gatewayRequest(r, "GET", "/items?from=-1", nil, "5")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = gatewayRequest(r, "GET", "/items?size=0", nil, "5")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, captured.Method)
}

func TestGateway_RejectsBadApprovedParam(t *testing.T) {
	r, captured := setupGateway(t)

	w := gatewayRequest(r, "PATCH", "/bookings/3?approved=maybe", nil, "1")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, captured.Method)
}

func TestGateway_UsersRouteNeedsNoIdentity(t *testing.T) {
	r, captured := setupGateway(t)

	w := gatewayRequest(r, "POST", "/users", map[string]interface{}{
		"name":  "Anna",
		"email": "anna@example.com",
	}, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/users", captured.Path)
}

func TestGateway_BackendDown(t *testing.T) {
	proxy, err := NewProxy("http://127.0.0.1:1", zerolog.Nop())
	require.NoError(t, err)
	handler := NewHandler(proxy, fixedClock{now: time.Now()})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.RegisterRoutes(r.Group("/"))

	w := gatewayRequest(r, "GET", "/users", nil, "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
