package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"docmanager-api/internal/application/ports"
	"docmanager-api/internal/domain/document"
	"docmanager-api/internal/domain/event"
	"docmanager-api/internal/domain/user"
	"docmanager-api/internal/infrastructure/metrics"
)

// allowedTypes maps every accepted MIME type to the extension used when the name has none.
var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/heic":      ".heic",
	"image/heif":      ".heif",
	"application/pdf": ".pdf",
}

type UploadService struct {
	storage            ports.ObjectStorage
	documentRepository document.Repository
	orphanRepository   document.OrphanRepository
	events             ports.EventPublisher
	mCounter           *prometheus.CounterVec
	logger             *zap.Logger
	maxSize            int64
}

func NewUploadService(
	storage ports.ObjectStorage,
	documentRepository document.Repository,
	orphanRepository document.OrphanRepository,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
	maxSize int64,
) ports.UploadService {
	return &UploadService{
		storage:            storage,
		documentRepository: documentRepository,
		orphanRepository:   orphanRepository,
		events:             events,
		mCounter:           mCounter,
		logger:             logger,
		maxSize:            maxSize,
	}
}

// Upload handles every file on its own; one file failing never undoes another.
func (s *UploadService) Upload(
	ctx context.Context,
	owner user.Identity,
	category string,
	files []*multipart.FileHeader,
) document.UploadResults {
	category = strings.TrimSpace(category)
	if category == "" {
		category = document.DefaultCategory
	}

	results := make(document.UploadResults, 0, len(files))
	for _, fh := range files {
		res := &document.UploadResult{Filename: fh.Filename}
		res.Document, res.Err = s.uploadOne(ctx, owner, category, fh)
		switch {
		case res.Err == nil:
			metrics.Inc(s.mCounter, metrics.DocumentsUploaded)
		case IsValidation(res.Err):
			metrics.Inc(s.mCounter, metrics.UploadsRejected)
		default:
			metrics.Inc(s.mCounter, metrics.UploadsFailed)
			s.logger.Error("upload failed", zap.String("filename", fh.Filename), zap.Error(res.Err))
		}
		results = append(results, res)
	}

	return results
}

func (s *UploadService) uploadOne(
	ctx context.Context,
	owner user.Identity,
	category string,
	fh *multipart.FileHeader,
) (*document.Document, error) {
	if fh.Size > s.maxSize {
		return nil, &ValidationError{
			Field:  "file",
			Reason: fmt.Sprintf("file exceeds the maximum size of %d bytes", s.maxSize),
		}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	mimeType, err := detectMIME(fh.Header.Get("Content-Type"), f)
	if err != nil {
		return nil, fmt.Errorf("detect content type: %w", err)
	}
	mimeExt, ok := allowedTypes[mimeType]
	if !ok {
		return nil, &ValidationError{
			Field:  "file",
			Reason: fmt.Sprintf("file type %q is not allowed; use JPEG, PNG, HEIC/HEIF or PDF", mimeType),
		}
	}

	display := sanitizeFileName(fh.Filename)
	key := uuid.NewString() + storageExt(display, mimeExt)

	ref, err := s.storage.Put(ctx, document.Object{
		Key:         key,
		Body:        f,
		Size:        fh.Size,
		ContentType: mimeType,
		DisplayName: display,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	doc, err := s.documentRepository.CreateDocument(ctx, &document.Document{
		StorageKey:       key,
		OriginalFilename: originalName(fh.Filename),
		URL:              ref.URL,
		OwnerID:          owner.ID,
		Category:         category,
		MimeType:         mimeType,
		Size:             fh.Size,
	})
	if err != nil {
		s.discardBlob(context.WithoutCancel(ctx), key, err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	e := event.New(event.ActionUploaded)
	e.DocumentID = doc.ID.String()
	e.UserID = owner.ID.String()
	e.StorageKey = doc.StorageKey
	e.Filename = doc.OriginalFilename
	s.events.Publish(ctx, e)

	return doc, nil
}

// discardBlob removes a blob whose metadata write failed, or logs it for the reconciler.
func (s *UploadService) discardBlob(ctx context.Context, key string, cause error) {
	err := s.storage.Delete(ctx, key)
	if err == nil {
		return
	}

	s.logger.Warn("failed to remove blob after metadata failure",
		zap.String("storage_key", key), zap.Error(err), zap.NamedError("cause", cause))

	reason := fmt.Sprintf("metadata insert failed: %v; delete failed: %v", cause, err)
	if rerr := s.orphanRepository.RecordOrphan(ctx, &document.OrphanedBlob{StorageKey: key, Reason: reason}); rerr != nil {
		s.logger.Error("failed to record orphaned blob", zap.String("storage_key", key), zap.Error(rerr))
		return
	}

	metrics.Inc(s.mCounter, metrics.BlobsOrphaned)

	e := event.New(event.ActionBlobOrphaned)
	e.StorageKey = key
	e.Reason = reason
	s.events.Publish(ctx, e)
}

// detectMIME trusts a concrete part Content-Type and sniffs the bytes otherwise.
func detectMIME(header string, f io.ReadSeeker) (string, error) {
	mt := ""
	if header != "" {
		if parsed, _, err := mime.ParseMediaType(header); err == nil {
			mt = strings.ToLower(parsed)
		}
	}

	if mt == "" || mt == "application/octet-stream" {
		m, err := mimetype.DetectReader(f)
		if err != nil {
			return "", err
		}
		if _, err = f.Seek(0, io.SeekStart); err != nil {
			return "", err
		}
		mt, _, err = mime.ParseMediaType(m.String())
		if err != nil {
			return "", err
		}
	}

	if mt == "image/jpg" || mt == "image/pjpeg" {
		mt = "image/jpeg"
	}

	return mt, nil
}
