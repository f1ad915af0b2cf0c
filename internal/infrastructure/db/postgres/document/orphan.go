package document

import (
	"context"

	"github.com/google/uuid"

	"docmanager-api/internal/domain/document"
)

func (r *Repository) RecordOrphan(ctx context.Context, o *document.OrphanedBlob) error {
	_, err := r.db.Exec(ctx, InsertOrphanedBlob, o.StorageKey, o.Reason)
	return err
}

// FetchPendingOrphans returns the oldest rows first; maxAttempts <= 0 means no cap.
func (r *Repository) FetchPendingOrphans(ctx context.Context, maxAttempts, limit int) (document.OrphanedBlobs, error) {
	rows, err := r.db.Query(ctx, SelectPendingOrphans, maxAttempts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	os := OrphanedBlobs{}
	for rows.Next() {
		o := new(OrphanedBlob)
		if err = rows.Scan(&o.ID, &o.StorageKey, &o.Reason, &o.Attempts, &o.CreatedAt); err != nil {
			return nil, err
		}
		os = append(os, o)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBOrphans(os), nil
}

func (r *Repository) ResolveOrphan(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, DeleteOrphanByID, id)
	return err
}

func (r *Repository) MarkOrphanAttempt(ctx context.Context, id uuid.UUID, reason string) error {
	_, err := r.db.Exec(ctx, UpdateOrphanFailed, id, reason)
	return err
}
