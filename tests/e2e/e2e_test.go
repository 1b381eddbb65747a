package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shareit/internal/database"
	"shareit/internal/middleware"
	"shareit/internal/modules/booking"
	"shareit/internal/modules/item"
	"shareit/internal/modules/request"
	"shareit/internal/modules/user"
	"shareit/internal/pkg/clock"
	"shareit/internal/repository"

	"github.com/rs/zerolog"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
}

type ErrorResponse struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.Migrate(db), "Failed to migrate test database")

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	clk := clock.System()
	log := zerolog.Nop()

	userHandler := user.NewHandler(user.NewService(userRepo, log))
	itemHandler := item.NewHandler(item.NewService(itemRepo, userRepo, bookingRepo, commentRepo, requestRepo, clk, log))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, itemRepo, userRepo, clk, false, log))
	requestHandler := request.NewHandler(request.NewService(requestRepo, itemRepo, userRepo, clk, log))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	root := r.Group("/")
	userHandler.RegisterRoutes(root)
	itemHandler.RegisterRoutes(root)
	bookingHandler.RegisterRoutes(root)
	requestHandler.RegisterRoutes(root)

	return &E2ETestSuite{router: r, db: db}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, userID int64) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set(middleware.HeaderUserID, strconv.FormatInt(userID, 10))
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), "Body: %s", w.Body.String())
	return m
}

func parseList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	var l []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &l), "Body: %s", w.Body.String())
	return l
}

func parseError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Body: %s", w.Body.String())
	return resp
}

func (s *E2ETestSuite) createUser(t *testing.T, name, email string) int64 {
	w := s.makeRequest("POST", "/users", map[string]interface{}{"name": name, "email": email}, 0)
	require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())
	return int64(parseMap(t, w)["id"].(float64))
}

func (s *E2ETestSuite) createItem(t *testing.T, ownerID int64, name, description string) int64 {
	w := s.makeRequest("POST", "/items", map[string]interface{}{
		"name":        name,
		"description": description,
		"available":   true,
	}, ownerID)
	require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())
	return int64(parseMap(t, w)["id"].(float64))
}

func TestFlow1_UserLifecycle(t *testing.T) {
	suite := setupTestSuite(t)

	var userID int64
	t.Run("POST /users", func(t *testing.T) {
		userID = suite.createUser(t, "Anna", "anna@example.com")
		assert.Positive(t, userID)
	})

	t.Run("POST /users duplicate email", func(t *testing.T) {
		w := suite.makeRequest("POST", "/users", map[string]interface{}{
			"name":  "Another Anna",
			"email": "anna@example.com",
		}, 0)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", parseError(t, w).Error.Code)
	})

	t.Run("PATCH /users/:userId", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/users/%d", userID), map[string]interface{}{
			"name": "Anna Updated",
		}, 0)
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseMap(t, w)
		assert.Equal(t, "Anna Updated", resp["name"])
		assert.Equal(t, "anna@example.com", resp["email"])
	})

	t.Run("PATCH /users/:userId email conflict", func(t *testing.T) {
		otherID := suite.createUser(t, "Boris", "boris@example.com")
		w := suite.makeRequest("PATCH", fmt.Sprintf("/users/%d", otherID), map[string]interface{}{
			"email": "anna@example.com",
		}, 0)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("GET /users", func(t *testing.T) {
		w := suite.makeRequest("GET", "/users", nil, 0)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, parseList(t, w), 2)
	})

	t.Run("DELETE /users/:userId", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/users/%d", userID), nil, 0)
		assert.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("GET", fmt.Sprintf("/users/%d", userID), nil, 0)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFlow2_ItemManagement(t *testing.T) {
	suite := setupTestSuite(t)

	ownerID := suite.createUser(t, "Owner", "owner@example.com")
	strangerID := suite.createUser(t, "Stranger", "stranger@example.com")

	var itemID int64
	t.Run("POST /items", func(t *testing.T) {
		itemID = suite.createItem(t, ownerID, "Cordless drill", "18V drill with two batteries")
		assert.Positive(t, itemID)
	})

	t.Run("POST /items without identity header", func(t *testing.T) {
		w := suite.makeRequest("POST", "/items", map[string]interface{}{
			"name":        "Ladder",
			"description": "Step ladder",
			"available":   true,
		}, 0)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("PATCH /items/:itemId by non-owner", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/items/%d", itemID), map[string]interface{}{
			"name": "Stolen drill",
		}, strangerID)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("PATCH /items/:itemId by owner", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/items/%d", itemID), map[string]interface{}{
			"description": "18V drill, charger included",
		}, ownerID)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "18V drill, charger included", parseMap(t, w)["description"])
	})

	t.Run("GET /items/search", func(t *testing.T) {
		w := suite.makeRequest("GET", "/items/search?text=DRILL", nil, 0)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, parseList(t, w), 1)
	})

	t.Run("GET /items/search blank text", func(t *testing.T) {
		w := suite.makeRequest("GET", "/items/search?text=", nil, 0)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, parseList(t, w))
	})

	t.Run("GET /items/:itemId includes comments", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/items/%d", itemID), nil, strangerID)
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseMap(t, w)
		assert.NotNil(t, resp["comments"])
	})
}

func TestFlow3_BookingLifecycle(t *testing.T) {
	suite := setupTestSuite(t)

	ownerID := suite.createUser(t, "Owner", "owner@example.com")
	bookerID := suite.createUser(t, "Booker", "booker@example.com")
	itemID := suite.createItem(t, ownerID, "Step ladder", "3m aluminium ladder")

	start := time.Now().Add(24 * time.Hour)
	end := start.Add(48 * time.Hour)

	var bookingID int64
	t.Run("POST /bookings", func(t *testing.T) {
		w := suite.makeRequest("POST", "/bookings", map[string]interface{}{
			"itemId": itemID,
			"start":  start.Format(time.RFC3339),
			"end":    end.Format(time.RFC3339),
		}, bookerID)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())
		resp := parseMap(t, w)
		bookingID = int64(resp["id"].(float64))
		assert.Equal(t, "WAITING", resp["status"])
	})

	t.Run("POST /bookings by owner", func(t *testing.T) {
		w := suite.makeRequest("POST", "/bookings", map[string]interface{}{
			"itemId": itemID,
			"start":  start.Format(time.RFC3339),
			"end":    end.Format(time.RFC3339),
		}, ownerID)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("POST /bookings start after end", func(t *testing.T) {
		w := suite.makeRequest("POST", "/bookings", map[string]interface{}{
			"itemId": itemID,
			"start":  end.Format(time.RFC3339),
			"end":    start.Format(time.RFC3339),
		}, bookerID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("PATCH /bookings/:bookingId by booker", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/bookings/%d?approved=true", bookingID), nil, bookerID)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("PATCH /bookings/:bookingId approve", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/bookings/%d?approved=true", bookingID), nil, ownerID)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())
		assert.Equal(t, "APPROVED", parseMap(t, w)["status"])
	})

	t.Run("PATCH /bookings/:bookingId repeated approve", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/bookings/%d?approved=true", bookingID), nil, ownerID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET /bookings/:bookingId by stranger", func(t *testing.T) {
		strangerID := suite.createUser(t, "Stranger", "stranger@example.com")
		w := suite.makeRequest("GET", fmt.Sprintf("/bookings/%d", bookingID), nil, strangerID)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GET /bookings state=FUTURE", func(t *testing.T) {
		w := suite.makeRequest("GET", "/bookings?state=FUTURE", nil, bookerID)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, parseList(t, w), 1)
	})

	t.Run("GET /bookings/owner state=WAITING", func(t *testing.T) {
		w := suite.makeRequest("GET", "/bookings/owner?state=WAITING", nil, ownerID)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, parseList(t, w))
	})

	t.Run("GET /bookings/owner state=ALL", func(t *testing.T) {
		w := suite.makeRequest("GET", "/bookings/owner", nil, ownerID)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, parseList(t, w), 1)
	})
}

func TestFlow4_Comments(t *testing.T) {
	suite := setupTestSuite(t)

	ownerID := suite.createUser(t, "Owner", "owner@example.com")
	bookerID := suite.createUser(t, "Booker", "booker@example.com")
	itemID := suite.createItem(t, ownerID, "Belt sander", "Powerful belt sander")

	t.Run("POST comment without finished booking", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/items/%d/comment", itemID), map[string]interface{}{
			"text": "Never used it",
		}, bookerID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("POST comment after finished booking", func(t *testing.T) {
		start := time.Now().Add(-72 * time.Hour)
		end := time.Now().Add(-48 * time.Hour)
		w := suite.makeRequest("POST", "/bookings", map[string]interface{}{
			"itemId": itemID,
			"start":  start.Format(time.RFC3339),
			"end":    end.Format(time.RFC3339),
		}, bookerID)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())
		bookingID := int64(parseMap(t, w)["id"].(float64))

		w = suite.makeRequest("PATCH", fmt.Sprintf("/bookings/%d?approved=true", bookingID), nil, ownerID)
		require.Equal(t, http.StatusOK, w.Code)

		w = suite.makeRequest("POST", fmt.Sprintf("/items/%d/comment", itemID), map[string]interface{}{
			"text": "Worked perfectly",
		}, bookerID)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())
		resp := parseMap(t, w)
		assert.Equal(t, "Worked perfectly", resp["text"])
		assert.Equal(t, "Booker", resp["authorName"])
	})
}

func TestFlow5_ItemRequests(t *testing.T) {
	suite := setupTestSuite(t)

	requestorID := suite.createUser(t, "Requestor", "requestor@example.com")
	ownerID := suite.createUser(t, "Owner", "owner@example.com")

	var requestID int64
	t.Run("POST /requests", func(t *testing.T) {
		w := suite.makeRequest("POST", "/requests", map[string]interface{}{
			"description": "Need a tile cutter for a day",
		}, requestorID)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())
		requestID = int64(parseMap(t, w)["id"].(float64))
	})

	t.Run("item answers the request", func(t *testing.T) {
		w := suite.makeRequest("POST", "/items", map[string]interface{}{
			"name":        "Tile cutter",
			"description": "Manual tile cutter, 600mm",
			"available":   true,
			"requestId":   requestID,
		}, ownerID)
		require.Equal(t, http.StatusOK, w.Code, "Body: %s", w.Body.String())
	})

	t.Run("GET /requests returns own with items", func(t *testing.T) {
		w := suite.makeRequest("GET", "/requests", nil, requestorID)
		require.Equal(t, http.StatusOK, w.Code)
		list := parseList(t, w)
		require.Len(t, list, 1)
		items := list[0]["items"].([]interface{})
		assert.Len(t, items, 1)
	})

	t.Run("GET /requests/all excludes own", func(t *testing.T) {
		w := suite.makeRequest("GET", "/requests/all", nil, requestorID)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, parseList(t, w))

		w = suite.makeRequest("GET", "/requests/all", nil, ownerID)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, parseList(t, w), 1)
	})

	t.Run("GET /requests/:requestId unknown id", func(t *testing.T) {
		w := suite.makeRequest("GET", "/requests/999", nil, requestorID)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
