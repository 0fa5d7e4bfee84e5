package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentify-backend-go/internal/core"
	"rentify-backend-go/internal/models"
	"rentify-backend-go/internal/storage"
)

// ItemHandler serves the public catalog and the owner-side item
// operations.
type ItemHandler struct {
	items    core.ItemService
	rentals  core.RentalService
	uploader *storage.Uploader
	logger   *zap.Logger
}

// NewItemHandler creates an ItemHandler.
func NewItemHandler(items core.ItemService, rentals core.RentalService, uploader *storage.Uploader, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{items: items, rentals: rentals, uploader: uploader, logger: logger}
}

// List handles GET /items?category=&search=.
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.items.List(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Get handles GET /items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.items.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// Create handles POST /items.
func (h *ItemHandler) Create(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	item, err := h.items.Create(c.Request.Context(), uid, req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// Update handles PUT /items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	item, err := h.items.Update(c.Request.Context(), c.Param("id"), uid, req)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UploadImage handles POST /items/:id/upload-image. It stores the
// file and returns the signed URL; attaching it to the item record is
// a separate PUT by the client.
func (h *ItemHandler) UploadImage(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no file provided"})
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadItemImage(c.Request.Context(),
		c.Param("id"), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.logger.Error("image upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to upload image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

// BookedDates handles GET /items/:id/booked-dates.
func (h *ItemHandler) BookedDates(c *gin.Context) {
	ranges, err := h.rentals.BookedDates(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookedDates": ranges})
}
