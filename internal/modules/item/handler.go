package item

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
	rg.POST("/items", identity, h.Add)
	rg.PATCH("/items/:itemId", identity, h.Patch)
	rg.GET("/items/search", h.Search)
	rg.GET("/items/:itemId", identity, h.GetByID)
	rg.GET("/items", identity, h.GetAll)
	rg.POST("/items/:itemId/comment", identity, h.AddComment)
}

func (h *Handler) Add(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	it, err := h.service.Add(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *Handler) Patch(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var req PatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	it, err := h.service.Patch(c.Request.Context(), itemID, req, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *Handler) GetByID(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	extended, err := h.service.GetByID(c.Request.Context(), itemID, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, extended)
}

func (h *Handler) GetAll(c *gin.Context) {
	from, size, ok := pageParams(c)
	if !ok {
		return
	}

	items, err := h.service.GetAll(c.Request.Context(), middleware.UserID(c), from, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Search(c *gin.Context) {
	from, size, ok := pageParams(c)
	if !ok {
		return
	}

	items, err := h.service.Search(c.Request.Context(), c.Query("text"), from, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) AddComment(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), req, itemID, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func pageParams(c *gin.Context) (int64, int, bool) {
	from, err := strconv.ParseInt(c.DefaultQuery("from", "0"), 10, 64)
	if err != nil || from < 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid from parameter")
		return 0, 0, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid size parameter")
		return 0, 0, false
	}
	return from, size, true
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
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
