package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"docmanager-api/internal/domain/document"
	"docmanager-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

var (
	_ document.Repository       = (*Repository)(nil)
	_ document.OrphanRepository = (*Repository)(nil)
)

func scanDocument(row pgx.Row) (*Document, error) {
	d := new(Document)
	err := row.Scan(
		&d.ID,

		&d.StorageKey,
		&d.OriginalFilename,
		&d.URL,
		&d.UploadedBy,
		&d.UploaderName,
		&d.Category,
		&d.MimeType,
		&d.SizeBytes,

		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func (r *Repository) fetchMany(ctx context.Context, query string, args ...any) (document.Documents, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ds := Documents{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(ds), nil
}

func (r *Repository) CreateDocument(ctx context.Context, req *document.Document) (*document.Document, error) {
	d, err := scanDocument(r.db.QueryRow(
		ctx,
		InsertDocument,
		req.StorageKey, req.OriginalFilename, req.URL, req.OwnerID, req.Category, req.MimeType, req.Size,
	))
	if err != nil {
		return nil, err
	}

	return fromDBModel(d), nil
}

func (r *Repository) FetchByOwner(ctx context.Context, ownerID uuid.UUID) (document.Documents, error) {
	return r.fetchMany(ctx, SelectDocumentsByOwner, ownerID)
}

func (r *Repository) FetchAll(ctx context.Context) (document.Documents, error) {
	return r.fetchMany(ctx, SelectAllDocuments)
}

func (r *Repository) FetchByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	d, err := scanDocument(r.db.QueryRow(ctx, SelectDocumentByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(d), nil
}

func (r *Repository) RenameOwned(ctx context.Context, id, ownerID uuid.UUID, originalFilename string) (*document.Document, error) {
	d, err := scanDocument(r.db.QueryRow(ctx, RenameOwnedDocument, originalFilename, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(d), nil
}

func (r *Repository) DeleteDocument(ctx context.Context, id uuid.UUID, orphan *document.OrphanedBlob) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	if orphan != nil {
		if _, err = tx.Exec(ctx, InsertOrphanedBlob, orphan.StorageKey, orphan.Reason); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("record orphan: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, DeleteDocumentByID, id)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return document.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *Repository) FetchStats(ctx context.Context) (document.Stats, error) {
	var s document.Stats
	err := r.db.QueryRow(ctx, SelectDocumentStats).Scan(&s.Total, &s.PDFCount, &s.ImageCount, &s.TotalSize)
	if err != nil {
		return document.Stats{}, err
	}

	return s, nil
}
