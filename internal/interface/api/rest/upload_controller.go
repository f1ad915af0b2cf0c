package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docmanager-api/internal/application/ports"
	"docmanager-api/internal/application/services"
	"docmanager-api/internal/domain/document"
	"docmanager-api/internal/infrastructure/jwt"
	dto "docmanager-api/internal/interface/api/rest/dto/document"
	"docmanager-api/internal/interface/api/rest/middleware"
)

// multipart framing on top of the file bytes
const formOverhead = int64(1 << 20)

type UploadController struct {
	uploadService ports.UploadService
	logger        *zap.Logger
	maxFileSize   int64
	maxFiles      int
}

func NewUploadController(
	r *gin.Engine,
	uploadService ports.UploadService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	maxFileSize int64,
	maxFiles int,
) *UploadController {
	uc := &UploadController{
		uploadService: uploadService,
		logger:        logger,
		maxFileSize:   maxFileSize,
		maxFiles:      maxFiles,
	}

	r.POST(RouteUpload, middleware.AuthMiddleware(jwtService), uc.UploadHandler)

	return uc
}

func (uc *UploadController) UploadHandler(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	limit := int64(uc.maxFiles)*uc.maxFileSize + formOverhead
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}
	defer func() { _ = form.RemoveAll() }()

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}
	if len(files) > uc.maxFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many files in one upload"})
		return
	}

	var category string
	if v := form.Value["category"]; len(v) > 0 {
		category = v[0]
	}

	results := uc.uploadService.Upload(c.Request.Context(), id, category, files)
	succeeded := results.Succeeded()
	failed := results.Failed()

	resp := dto.UploadResponse{
		Success: len(failed) == 0,
		Data:    dto.ToResponseDocuments(succeeded),
		Errors:  toUploadErrors(failed),
	}

	if len(succeeded) > 0 {
		c.JSON(http.StatusOK, resp)
		return
	}

	if allValidation(failed) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "no valid files uploaded",
			"errors":  resp.Errors,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "upload failed",
		"errors":  resp.Errors,
	})
}

// toUploadErrors reports validation reasons as-is and hides internal causes.
func toUploadErrors(failed document.UploadResults) []dto.UploadError {
	out := make([]dto.UploadError, 0, len(failed))
	for _, r := range failed {
		msg := "upload failed"
		var ve *services.ValidationError
		if errors.As(r.Err, &ve) {
			msg = ve.Reason
		}
		out = append(out, dto.UploadError{Filename: r.Filename, Error: msg})
	}
	return out
}

func allValidation(failed document.UploadResults) bool {
	for _, r := range failed {
		if !services.IsValidation(r.Err) {
			return false
		}
	}
	return true
}
