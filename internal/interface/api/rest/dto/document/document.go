package document

import (
	"time"

	"github.com/google/uuid"

	"docmanager-api/internal/interface/api/rest/dto/user"
)

type (
	// Document.UploadedBy is the owner id for owners and the owner's display name in admin listings.
	Document struct {
		ID               uuid.UUID  `json:"_id"`
		Filename         string     `json:"filename"`
		OriginalFilename string     `json:"originalFilename"`
		URL              string     `json:"url"`
		UploadedBy       string     `json:"uploadedBy"`
		UploaderID       *uuid.UUID `json:"uploaderId,omitempty"`
		Category         string     `json:"category"`
		Size             int64      `json:"size"`
		MimeType         string     `json:"mimeType"`
		CreatedAt        time.Time  `json:"createdAt"`
		UpdatedAt        time.Time  `json:"updatedAt"`
	}
	Documents []Document

	RenameRequest struct {
		OriginalFilename string `json:"originalFilename"`
	}
	RenameResponse struct {
		Success  bool     `json:"success"`
		Message  string   `json:"message"`
		Document Document `json:"document"`
	}

	DeleteResponse struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		S3Deleted bool   `json:"s3Deleted"`
	}

	UploadError struct {
		Filename string `json:"filename"`
		Error    string `json:"error"`
	}
	UploadResponse struct {
		Success bool          `json:"success"`
		Data    Documents     `json:"data"`
		Errors  []UploadError `json:"errors,omitempty"`
	}

	Stats struct {
		Total      int64 `json:"total"`
		PDFCount   int64 `json:"pdfCount"`
		ImageCount int64 `json:"imageCount"`
		TotalSize  int64 `json:"totalSize"`
	}

	UserDocuments struct {
		User      user.User `json:"user"`
		Documents Documents `json:"documents"`
	}
)
