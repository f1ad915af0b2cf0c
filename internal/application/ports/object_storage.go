package ports

import (
	"context"

	"docmanager-api/internal/domain/document"
)

type ObjectStorage interface {
	Put(ctx context.Context, obj document.Object) (document.StorageRef, error)
	Delete(ctx context.Context, key string) error
}
