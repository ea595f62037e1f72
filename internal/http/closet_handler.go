package http

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mindfit/internal/service"
)

// ClosetHandler expone el CRUD del inventario de prendas.
type ClosetHandler struct {
	logger *zap.Logger
	closet *service.ClosetService
}

func NewClosetHandler(logger *zap.Logger, closet *service.ClosetService) *ClosetHandler {
	return &ClosetHandler{logger: logger, closet: closet}
}

// List maneja GET /closet.
func (h *ClosetHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.closet.Items()})
}

// Add maneja POST /closet/items. La imagen viaja como base64 en el body.
func (h *ClosetHandler) Add(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	rawImage, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image encoding"})
		return
	}

	item, err := h.closet.AddItem(c.Request.Context(), rawImage)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClassifyInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "classification already in progress"})
		case errors.Is(err, service.ErrEmptyImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty image"})
		default:
			h.logger.Warn("add closet item failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not analyze image, please retry"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// Remove maneja DELETE /closet/items/:id. Idempotente.
func (h *ClosetHandler) Remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	removed, err := h.closet.RemoveItem(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("remove closet item failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist closet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// Recategorize maneja PATCH /closet/items/:id/category.
func (h *ClosetHandler) Recategorize(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req struct {
		Category string `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	found, err := h.closet.Recategorize(c.Request.Context(), id, req.Category)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		h.logger.Error("recategorize closet item failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist closet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": found})
}
