package document

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateDocument(ctx context.Context, req *Document) (*Document, error)
	FetchByOwner(ctx context.Context, ownerID uuid.UUID) (Documents, error)
	FetchAll(ctx context.Context) (Documents, error)
	// FetchByID returns (nil, nil) when the document does not exist.
	FetchByID(ctx context.Context, id uuid.UUID) (*Document, error)
	// RenameOwned returns (nil, nil) when the document does not exist or is owned by someone else.
	RenameOwned(ctx context.Context, id, ownerID uuid.UUID, originalFilename string) (*Document, error)
	// DeleteDocument removes the row and, when orphan is set, records it in the
	// same transaction. Returns ErrNotFound if the row is already gone.
	DeleteDocument(ctx context.Context, id uuid.UUID, orphan *OrphanedBlob) error
	FetchStats(ctx context.Context) (Stats, error)
}

type OrphanRepository interface {
	RecordOrphan(ctx context.Context, o *OrphanedBlob) error
	FetchPendingOrphans(ctx context.Context, maxAttempts, limit int) (OrphanedBlobs, error)
	ResolveOrphan(ctx context.Context, id uuid.UUID) error
	MarkOrphanAttempt(ctx context.Context, id uuid.UUID, reason string) error
}
