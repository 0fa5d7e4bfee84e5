package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentify-backend-go/internal/core"
	"rentify-backend-go/internal/middleware"
	"rentify-backend-go/internal/storage"
)

// SetupRoutes wires every endpoint to its handler. Global middleware
// (logging, recovery, CORS) is applied to the router before this is
// called, in main. The token verifier and account creator are passed
// in rather than pulled from package globals so tests can stub them.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	verifier middleware.TokenVerifier,
	accounts UserCreator,
	userService core.UserService,
	itemService core.ItemService,
	rentalService core.RentalService,
	messageService core.MessageService,
	uploader *storage.Uploader,
) {
	authMW := middleware.NewAuthMiddleware(verifier, logger)

	authHandler := NewAuthHandler(userService, accounts, logger)
	itemHandler := NewItemHandler(itemService, rentalService, uploader, logger)
	rentalHandler := NewRentalHandler(rentalService, itemService, logger)
	messageHandler := NewMessageHandler(messageService, logger)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.GET("/me", authMW.VerifyToken(), authHandler.Me)
	}

	itemsGroup := router.Group("/items")
	{
		// Browsing the catalog needs no account.
		itemsGroup.GET("", itemHandler.List)
		itemsGroup.GET("/:id", itemHandler.Get)
		itemsGroup.GET("/:id/booked-dates", itemHandler.BookedDates)

		itemsGroup.POST("", authMW.VerifyToken(), itemHandler.Create)
		itemsGroup.PUT("/:id", authMW.VerifyToken(), itemHandler.Update)
		itemsGroup.POST("/:id/upload-image", authMW.VerifyToken(), itemHandler.UploadImage)
	}

	rentalsGroup := router.Group("/rentals", authMW.VerifyToken())
	{
		rentalsGroup.POST("", rentalHandler.Create)
		rentalsGroup.POST("/:id/complete", rentalHandler.Complete)
		rentalsGroup.GET("/my-rentals", rentalHandler.MyRentals)
		rentalsGroup.GET("/my-listings", rentalHandler.MyListings)
	}

	messagesGroup := router.Group("/messages", authMW.VerifyToken())
	{
		messagesGroup.GET("/conversations", messageHandler.Conversations)
		messagesGroup.GET("/:otherUserId", messageHandler.ListWith)
		messagesGroup.POST("", messageHandler.Send)
	}

	router.GET("/categories", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": Categories})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	logger.Info("API routes configured")
}
