package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docmanager-api/internal/application/ports"
	"docmanager-api/internal/domain/user"
	"docmanager-api/internal/infrastructure/jwt"
	dto "docmanager-api/internal/interface/api/rest/dto/document"
	userDTO "docmanager-api/internal/interface/api/rest/dto/user"
	"docmanager-api/internal/interface/api/rest/middleware"
	"docmanager-api/internal/interface/api/rest/validator"
)

// AdminController serves /api/admin; every route sits behind the admin role guard.
type AdminController struct {
	documentService ports.DocumentService
	userService     ports.UserService
	logger          *zap.Logger
}

func NewAdminController(
	r *gin.Engine,
	documentService ports.DocumentService,
	userService ports.UserService,
	logger *zap.Logger,
	jwtService *jwt.Service,
) *AdminController {
	ac := &AdminController{
		documentService: documentService,
		userService:     userService,
		logger:          logger,
	}

	g := r.Group(RouteAdmin,
		middleware.AuthMiddleware(jwtService),
		middleware.RequireRole(user.RoleAdmin),
	)
	g.GET(RouteAdminDocuments, ac.ListDocumentsHandler)
	g.DELETE(RouteAdminDocument, ac.DeleteDocumentHandler)
	g.GET(RouteAdminStats, ac.StatsHandler)
	g.GET(RouteAdminUsers, ac.ListUsersHandler)
	g.GET(RouteAdminUserDocuments, ac.UserDocumentsHandler)

	return ac
}

func (ac *AdminController) ListDocumentsHandler(c *gin.Context) {
	docs, err := ac.documentService.ListAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, ac.logger, err, "Failed to fetch documents")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminDocuments(docs))
}

func (ac *AdminController) DeleteDocumentHandler(c *gin.Context) {
	ok, docID := validator.IsUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	out, err := ac.documentService.AdminDelete(c.Request.Context(), docID)
	if err != nil {
		writeServiceError(c, ac.logger, err, "Failed to delete document")
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResponse{
		Success:   true,
		Message:   "Document deleted",
		S3Deleted: out.StorageDeleted,
	})
}

func (ac *AdminController) StatsHandler(c *gin.Context) {
	s, err := ac.documentService.Stats(c.Request.Context())
	if err != nil {
		writeServiceError(c, ac.logger, err, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, dto.ToResponseStats(s))
}

func (ac *AdminController) ListUsersHandler(c *gin.Context) {
	us, err := ac.userService.ListUsers(c.Request.Context())
	if err != nil {
		writeServiceError(c, ac.logger, err, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, userDTO.ToResponseWithDocCounts(us))
}

func (ac *AdminController) UserDocumentsHandler(c *gin.Context) {
	ok, userID := validator.IsUUID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": user.ErrNotFound.Error()})
		return
	}

	u, docs, err := ac.documentService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": user.ErrNotFound.Error()})
			return
		}
		writeServiceError(c, ac.logger, err, "Failed to fetch documents")
		return
	}

	resp := userDTO.ToResponseUser(*u)
	resp.CreatedAt, resp.UpdatedAt = nil, nil
	c.JSON(http.StatusOK, dto.UserDocuments{
		User:      resp,
		Documents: dto.ToResponseDocuments(docs),
	})
}
