package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit/internal/domain"
	"shareit/internal/middleware"
	"shareit/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	identity := middleware.Identity()
	rg.POST("/bookings", identity, h.Create)
	rg.PATCH("/bookings/:bookingId", identity, h.SetApproval)
	rg.GET("/bookings/owner", identity, h.FindByOwner)
	rg.GET("/bookings/:bookingId", identity, h.FindByID)
	rg.GET("/bookings", identity, h.FindByBooker)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) SetApproval(c *gin.Context) {
	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid approved parameter")
		return
	}

	b, err := h.service.SetApproval(c.Request.Context(), bookingID, middleware.UserID(c), approved)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) FindByID(c *gin.Context) {
	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		return
	}

	b, err := h.service.FindByID(c.Request.Context(), bookingID, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) FindByBooker(c *gin.Context) {
	state, from, size, ok := listParams(c)
	if !ok {
		return
	}
	bookings, err := h.service.FindByBooker(c.Request.Context(), middleware.UserID(c), state, from, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) FindByOwner(c *gin.Context) {
	state, from, size, ok := listParams(c)
	if !ok {
		return
	}
	bookings, err := h.service.FindByOwner(c.Request.Context(), middleware.UserID(c), state, from, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// listParams parses the state/from/size triple shared by both listing
// endpoints. Unknown state names are rejected at the gateway; here an invalid
// name degrades to ALL, matching the defensive default in the state dispatch.
func listParams(c *gin.Context) (domain.SearchState, int64, int, bool) {
	state, err := domain.ParseSearchState(c.DefaultQuery("state", string(domain.StateAll)))
	if err != nil {
		state = domain.StateAll
	}
	from, err := strconv.ParseInt(c.DefaultQuery("from", "0"), 10, 64)
	if err != nil || from < 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid from parameter")
		return "", 0, 0, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid size parameter")
		return "", 0, 0, false
	}
	return state, from, size, true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+name)
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
