package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentify-backend-go/internal/core"
	"rentify-backend-go/internal/middleware"
)

// currentUserID pulls the verified uid set by the auth middleware. A
// missing uid means the middleware did not run; reply 401 and abort.
func currentUserID(c *gin.Context) (string, bool) {
	uid := c.GetString(middleware.ContextUserIDKey)
	if uid == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	return uid, true
}

// writeServiceError maps the index layer's typed outcomes to HTTP
// statuses. Anything unclassified (store failures, lock timeouts,
// corrupt records) is logged and returned as a generic 500.
func writeServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, core.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrNotAvailable):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "item is not available"})
	case errors.Is(err, core.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not authorized to perform this action"})
	case errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		logger.Error("request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
