package document

import (
	"time"

	"github.com/google/uuid"
)

type (
	Document struct {
		ID uuid.UUID

		StorageKey       string
		OriginalFilename string
		URL              string
		UploadedBy       uuid.UUID
		UploaderName     string
		Category         string
		MimeType         string
		SizeBytes        int64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Documents []*Document

	OrphanedBlob struct {
		ID         uuid.UUID
		StorageKey string
		Reason     string
		Attempts   int
		CreatedAt  time.Time
	}
	OrphanedBlobs []*OrphanedBlob
)
