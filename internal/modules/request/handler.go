package request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

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
	rg.POST("/requests", identity, h.Add)
	rg.GET("/requests/all", identity, h.FindByOtherUsers)
	rg.GET("/requests/:requestId", identity, h.FindByID)
	rg.GET("/requests", identity, h.FindByRequestor)
}

func (h *Handler) Add(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.Add(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) FindByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid requestId")
		return
	}

	r, err := h.service.FindByID(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) FindByRequestor(c *gin.Context) {
	requests, err := h.service.FindByRequestor(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) FindByOtherUsers(c *gin.Context) {
	from, err := strconv.ParseInt(c.DefaultQuery("from", "0"), 10, 64)
	if err != nil || from < 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid from parameter")
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid size parameter")
		return
	}

	requests, err := h.service.FindByOtherUsers(c.Request.Context(), middleware.UserID(c), from, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
