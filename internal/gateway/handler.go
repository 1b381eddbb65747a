package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shareit/internal/domain"
	"shareit/internal/middleware"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/response"
)

// Handler validates requests at the edge before they reach the backend.
// Anything that passes validation is forwarded as-is.
type Handler struct {
	proxy *Proxy
	clock clock.Clock
}

func NewHandler(proxy *Proxy, clk clock.Clock) *Handler {
	return &Handler{proxy: proxy, clock: clk}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	identity := middleware.Identity()

	rg.POST("/bookings", identity, h.validateBookingCreate, h.forward)
	rg.PATCH("/bookings/:bookingId", identity, h.validateApproval, h.forward)
	rg.GET("/bookings/owner", identity, h.validateListParams, h.forward)
	rg.GET("/bookings/:bookingId", identity, h.forward)
	rg.GET("/bookings", identity, h.validateListParams, h.forward)

	rg.POST("/items", identity, h.forward)
	rg.PATCH("/items/:itemId", identity, h.forward)
	rg.GET("/items/search", h.validatePageParams, h.forward)
	rg.GET("/items/:itemId", identity, h.forward)
	rg.GET("/items", identity, h.validatePageParams, h.forward)
	rg.POST("/items/:itemId/comment", identity, h.forward)

	rg.POST("/users", h.forward)
	rg.PATCH("/users/:userId", h.forward)
	rg.GET("/users/:userId", h.forward)
	rg.GET("/users", h.forward)
	rg.DELETE("/users/:userId", h.forward)

	rg.POST("/requests", identity, h.forward)
	rg.GET("/requests/all", identity, h.validatePageParams, h.forward)
	rg.GET("/requests/:requestId", identity, h.forward)
	rg.GET("/requests", identity, h.forward)
}

func (h *Handler) forward(c *gin.Context) {
	h.proxy.Forward(c)
}

type bookingCreateBody struct {
	ItemID int64      `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

func (h *Handler) validateBookingCreate(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		c.Abort()
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var req bookingCreateBody
	if err := json.Unmarshal(body, &req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		c.Abort()
		return
	}
	switch {
	case req.ItemID <= 0:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "itemId is required")
	case req.Start == nil || req.End == nil:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start and end are required")
	case !req.Start.Before(*req.End):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "booking start must be before end")
	case req.Start.Before(h.clock.Now()):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "booking start must not be in the past")
	default:
		c.Next()
		return
	}
	c.Abort()
}

func (h *Handler) validateApproval(c *gin.Context) {
	approved := c.Query("approved")
	if approved != "true" && approved != "false" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "approved must be true or false")
		c.Abort()
		return
	}
	c.Next()
}

func (h *Handler) validateListParams(c *gin.Context) {
	if state := c.Query("state"); state != "" {
		if _, err := domain.ParseSearchState(state); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			c.Abort()
			return
		}
	}
	h.validatePageParams(c)
}

func (h *Handler) validatePageParams(c *gin.Context) {
	if raw := c.Query("from"); raw != "" {
		from, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || from < 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid from parameter")
			c.Abort()
			return
		}
	}
	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid size parameter")
			c.Abort()
			return
		}
	}
	c.Next()
}
