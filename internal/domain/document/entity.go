package document

import (
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
)

const DefaultCategory = "general"

var ErrNotFound = errors.New("document not found")

type (
	Document struct {
		ID uuid.UUID

		StorageKey       string
		OriginalFilename string
		URL              string
		OwnerID          uuid.UUID
		// OwnerName is the uploader's username, or name, or "Unknown".
		OwnerName string
		Category  string
		MimeType  string
		Size      int64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Documents []*Document

	Stats struct {
		Total      int64
		PDFCount   int64
		ImageCount int64
		TotalSize  int64
	}

	// OrphanedBlob is a stored object that no document references anymore
	// and whose removal from the bucket has not succeeded yet.
	OrphanedBlob struct {
		ID         uuid.UUID
		StorageKey string
		Reason     string
		Attempts   int
		CreatedAt  time.Time
	}
	OrphanedBlobs []*OrphanedBlob

	Object struct {
		Key         string
		Body        io.Reader
		Size        int64
		ContentType string
		// DisplayName is an ASCII-safe name used in Content-Disposition.
		DisplayName string
	}
	StorageRef struct {
		Bucket string
		Key    string
		URL    string
	}

	UploadResult struct {
		Filename string
		Document *Document
		Err      error
	}
	UploadResults []*UploadResult

	DeleteOutcome struct {
		StorageDeleted bool
	}
)

func (rs UploadResults) Succeeded() Documents {
	out := make(Documents, 0, len(rs))
	for _, r := range rs {
		if r.Err == nil && r.Document != nil {
			out = append(out, r.Document)
		}
	}
	return out
}

func (rs UploadResults) Failed() UploadResults {
	var out UploadResults
	for _, r := range rs {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
