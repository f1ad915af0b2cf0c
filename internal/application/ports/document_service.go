package ports

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"docmanager-api/internal/domain/document"
	"docmanager-api/internal/domain/user"
)

type DocumentService interface {
	ListMine(ctx context.Context, owner user.Identity) (document.Documents, error)
	Rename(ctx context.Context, owner user.Identity, id uuid.UUID, newName string) (*document.Document, error)
	Delete(ctx context.Context, owner user.Identity, id uuid.UUID) (document.DeleteOutcome, error)

	// admin scope, guarded at the API boundary
	ListAll(ctx context.Context) (document.Documents, error)
	ListByUser(ctx context.Context, userID user.UUID) (*user.User, document.Documents, error)
	AdminDelete(ctx context.Context, id uuid.UUID) (document.DeleteOutcome, error)
	Stats(ctx context.Context) (document.Stats, error)
}

type UploadService interface {
	Upload(ctx context.Context, owner user.Identity, category string, files []*multipart.FileHeader) document.UploadResults
}
