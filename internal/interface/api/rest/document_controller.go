package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docmanager-api/internal/application/ports"
	"docmanager-api/internal/domain/document"
	"docmanager-api/internal/infrastructure/jwt"
	dto "docmanager-api/internal/interface/api/rest/dto/document"
	"docmanager-api/internal/interface/api/rest/middleware"
	"docmanager-api/internal/interface/api/rest/validator"
)

const msgNotFoundOrUnauthorized = "Document not found or unauthorized"

type DocumentController struct {
	documentService ports.DocumentService
	logger          *zap.Logger
}

func NewDocumentController(
	r *gin.Engine,
	documentService ports.DocumentService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *DocumentController {
	dc := &DocumentController{
		documentService: documentService,
		logger:          logger,
	}

	g := r.Group("", middleware.AuthMiddleware(jwtService))
	g.GET(RouteDocuments, dc.ListMyDocumentsHandler)
	g.PUT(RouteDocument, dc.RenameDocumentHandler)
	g.DELETE(RouteDocument, dc.DeleteDocumentHandler)

	return dc
}

func (dc *DocumentController) ListMyDocumentsHandler(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	docs, err := dc.documentService.ListMine(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, dc.logger, err, "Failed to fetch documents")
		return
	}

	c.JSON(http.StatusOK, dto.ToResponseDocuments(docs))
}

func (dc *DocumentController) RenameDocumentHandler(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	ok, docID := validator.IsUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFoundOrUnauthorized})
		return
	}

	var req dto.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	d, err := dc.documentService.Rename(c.Request.Context(), id, docID, req.OriginalFilename)
	if err != nil {
		if isDocumentNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgNotFoundOrUnauthorized})
			return
		}
		writeServiceError(c, dc.logger, err, "Failed to rename document")
		return
	}

	c.JSON(http.StatusOK, dto.RenameResponse{
		Success:  true,
		Message:  "File renamed successfully",
		Document: dto.ToResponseDocument(*d),
	})
}

func (dc *DocumentController) DeleteDocumentHandler(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	ok, docID := validator.IsUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFoundOrUnauthorized})
		return
	}

	out, err := dc.documentService.Delete(c.Request.Context(), id, docID)
	if err != nil {
		if isDocumentNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgNotFoundOrUnauthorized})
			return
		}
		writeServiceError(c, dc.logger, err, "Failed to delete document")
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResponse{
		Success:   true,
		Message:   "Document deleted successfully",
		S3Deleted: out.StorageDeleted,
	})
}

func isDocumentNotFound(err error) bool { return errors.Is(err, document.ErrNotFound) }
