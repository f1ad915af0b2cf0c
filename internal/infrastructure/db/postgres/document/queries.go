package document

const (
	// documentColumns expects the documents row aliased as d and users as u.
	documentColumns = `
		d.id, d.storage_key, d.original_filename, d.url, d.uploaded_by,
		COALESCE(NULLIF(u.username, ''), NULLIF(u.name, ''), 'Unknown'),
		d.category, d.mime_type, d.size_bytes, d.created_at, d.updated_at
	`

	InsertDocument = `
		WITH inserted AS (
			INSERT INTO documents (storage_key, original_filename, url, uploaded_by, category, mime_type, size_bytes)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING *
		)
		SELECT` + documentColumns + `
		FROM inserted d
		LEFT JOIN users u ON u.id = d.uploaded_by
	`
	SelectDocumentsByOwner = `
		SELECT` + documentColumns + `
		FROM documents d
		LEFT JOIN users u ON u.id = d.uploaded_by
		WHERE d.uploaded_by = $1
		ORDER BY d.created_at DESC
	`
	SelectAllDocuments = `
		SELECT` + documentColumns + `
		FROM documents d
		LEFT JOIN users u ON u.id = d.uploaded_by
		ORDER BY d.created_at DESC
	`
	SelectDocumentByID = `
		SELECT` + documentColumns + `
		FROM documents d
		LEFT JOIN users u ON u.id = d.uploaded_by
		WHERE d.id = $1
	`
	RenameOwnedDocument = `
		WITH updated AS (
			UPDATE documents
			SET original_filename = $1,
			    updated_at = now()
			WHERE id = $2 AND uploaded_by = $3
			RETURNING *
		)
		SELECT` + documentColumns + `
		FROM updated d
		LEFT JOIN users u ON u.id = d.uploaded_by
	`
	DeleteDocumentByID = `DELETE FROM documents WHERE id = $1`
	SelectDocumentStats = `
		SELECT
		  COUNT(*),
		  COUNT(*) FILTER (WHERE mime_type = 'application/pdf'),
		  COUNT(*) FILTER (WHERE mime_type LIKE 'image/%'),
		  COALESCE(SUM(size_bytes), 0)::bigint
		FROM documents
	`

	InsertOrphanedBlob = `
		INSERT INTO orphaned_blobs (storage_key, reason)
		VALUES ($1, $2)
	`
	SelectPendingOrphans = `
		SELECT id, storage_key, reason, attempts, created_at
		FROM orphaned_blobs
		WHERE $1 <= 0 OR attempts < $1
		ORDER BY created_at
		LIMIT $2
	`
	DeleteOrphanByID   = `DELETE FROM orphaned_blobs WHERE id = $1`
	UpdateOrphanFailed = `
		UPDATE orphaned_blobs
		SET attempts = attempts + 1,
		    reason = $2,
		    updated_at = now()
		WHERE id = $1
	`
)
