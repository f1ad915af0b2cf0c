package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"docmanager-api/internal/application/ports"
	"docmanager-api/internal/domain/document"
	"docmanager-api/internal/domain/event"
	"docmanager-api/internal/domain/user"
	"docmanager-api/internal/infrastructure/metrics"
)

type DocumentService struct {
	documentRepository document.Repository
	userRepository     user.Repository
	storage            ports.ObjectStorage
	events             ports.EventPublisher
	mCounter           *prometheus.CounterVec
	logger             *zap.Logger
}

func NewDocumentService(
	documentRepository document.Repository,
	userRepository user.Repository,
	storage ports.ObjectStorage,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.DocumentService {
	return &DocumentService{
		documentRepository: documentRepository,
		userRepository:     userRepository,
		storage:            storage,
		events:             events,
		mCounter:           mCounter,
		logger:             logger,
	}
}

func (ds *DocumentService) ListMine(ctx context.Context, owner user.Identity) (document.Documents, error) {
	return ds.documentRepository.FetchByOwner(ctx, owner.ID)
}

func (ds *DocumentService) ListAll(ctx context.Context) (document.Documents, error) {
	return ds.documentRepository.FetchAll(ctx)
}

func (ds *DocumentService) ListByUser(ctx context.Context, userID user.UUID) (*user.User, document.Documents, error) {
	u, err := ds.userRepository.FetchUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if u == nil {
		return nil, nil, user.ErrNotFound
	}

	docs, err := ds.documentRepository.FetchByOwner(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return u, docs, nil
}

func (ds *DocumentService) Stats(ctx context.Context) (document.Stats, error) {
	return ds.documentRepository.FetchStats(ctx)
}

// Rename touches only the display name; documents of other owners look absent.
func (ds *DocumentService) Rename(
	ctx context.Context,
	owner user.Identity,
	id uuid.UUID,
	newName string,
) (*document.Document, error) {
	name := strings.TrimSpace(newName)
	if name == "" {
		return nil, &ValidationError{Field: "originalFilename", Reason: "Filename is required"}
	}
	if utf8.RuneCountInString(name) > maxOriginalLength {
		return nil, &ValidationError{
			Field:  "originalFilename",
			Reason: fmt.Sprintf("Filename must be at most %d characters", maxOriginalLength),
		}
	}

	d, err := ds.documentRepository.RenameOwned(ctx, id, owner.ID, name)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, document.ErrNotFound
	}

	metrics.Inc(ds.mCounter, metrics.DocumentsRenamed)

	e := event.New(event.ActionRenamed)
	e.DocumentID = d.ID.String()
	e.UserID = owner.ID.String()
	e.Filename = d.OriginalFilename
	ds.events.Publish(ctx, e)

	return d, nil
}

func (ds *DocumentService) Delete(ctx context.Context, owner user.Identity, id uuid.UUID) (document.DeleteOutcome, error) {
	d, err := ds.documentRepository.FetchByID(ctx, id)
	if err != nil {
		return document.DeleteOutcome{}, err
	}
	if d == nil || d.OwnerID != owner.ID {
		return document.DeleteOutcome{}, document.ErrNotFound
	}

	return ds.remove(ctx, owner, d)
}

func (ds *DocumentService) AdminDelete(ctx context.Context, id uuid.UUID) (document.DeleteOutcome, error) {
	d, err := ds.documentRepository.FetchByID(ctx, id)
	if err != nil {
		return document.DeleteOutcome{}, err
	}
	if d == nil {
		return document.DeleteOutcome{}, document.ErrNotFound
	}

	return ds.remove(ctx, user.Identity{ID: d.OwnerID}, d)
}

// remove deletes the blob best-effort; a blob that survives is logged as orphaned in the
// same transaction that drops the row, so the metadata delete always wins.
func (ds *DocumentService) remove(
	ctx context.Context,
	owner user.Identity,
	d *document.Document,
) (document.DeleteOutcome, error) {
	var orphan *document.OrphanedBlob
	if err := ds.storage.Delete(ctx, d.StorageKey); err != nil {
		ds.logger.Warn("failed to delete blob, recording as orphaned",
			zap.String("document_id", d.ID.String()),
			zap.String("storage_key", d.StorageKey),
			zap.Error(err),
		)
		orphan = &document.OrphanedBlob{StorageKey: d.StorageKey, Reason: err.Error()}
	}

	if err := ds.documentRepository.DeleteDocument(ctx, d.ID, orphan); err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return document.DeleteOutcome{}, err
		}
		return document.DeleteOutcome{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	metrics.Inc(ds.mCounter, metrics.DocumentsDeleted)

	e := event.New(event.ActionDeleted)
	e.DocumentID = d.ID.String()
	e.UserID = owner.ID.String()
	e.StorageKey = d.StorageKey
	e.Filename = d.OriginalFilename
	ds.events.Publish(ctx, e)

	if orphan != nil {
		metrics.Inc(ds.mCounter, metrics.BlobsOrphaned)

		oe := event.New(event.ActionBlobOrphaned)
		oe.DocumentID = d.ID.String()
		oe.StorageKey = d.StorageKey
		oe.Reason = orphan.Reason
		ds.events.Publish(ctx, oe)
	}

	return document.DeleteOutcome{StorageDeleted: orphan == nil}, nil
}
