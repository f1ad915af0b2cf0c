package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docmanager-api/internal/application/services"
	"docmanager-api/internal/domain/document"
	"docmanager-api/internal/domain/user"
)

// writeServiceError maps service errors to a status. 500s carry only the fallback message;
// the cause goes to the log.
func writeServiceError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, document.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
	default:
		logger.Error(fallback,
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
