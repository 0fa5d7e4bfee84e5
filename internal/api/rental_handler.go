package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentify-backend-go/internal/core"
	"rentify-backend-go/internal/models"
)

// RentalHandler serves the rental flow and the caller's own rentals
// and listings.
type RentalHandler struct {
	rentals core.RentalService
	items   core.ItemService
	logger  *zap.Logger
}

// NewRentalHandler creates a RentalHandler.
func NewRentalHandler(rentals core.RentalService, items core.ItemService, logger *zap.Logger) *RentalHandler {
	return &RentalHandler{rentals: rentals, items: items, logger: logger}
}

// Create handles POST /rentals.
func (h *RentalHandler) Create(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	rental, err := h.rentals.Create(c.Request.Context(), uid, req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rental": rental})
}

// Complete handles POST /rentals/:id/complete.
func (h *RentalHandler) Complete(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	rental, err := h.rentals.Complete(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rental": rental})
}

// MyRentals handles GET /rentals/my-rentals.
func (h *RentalHandler) MyRentals(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	rentals, err := h.rentals.ListForRenter(c.Request.Context(), uid)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rentals": rentals})
}

// MyListings handles GET /rentals/my-listings.
func (h *RentalHandler) MyListings(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	items, err := h.items.ListByOwner(c.Request.Context(), uid)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
