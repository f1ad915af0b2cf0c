package document

import (
	domain "docmanager-api/internal/domain/document"
)

func fromDBModel(model *Document) *domain.Document {
	var d = &domain.Document{
		ID: model.ID,

		StorageKey:       model.StorageKey,
		OriginalFilename: model.OriginalFilename,
		URL:              model.URL,
		OwnerID:          model.UploadedBy,
		OwnerName:        model.UploaderName,
		Category:         model.Category,
		MimeType:         model.MimeType,
		Size:             model.SizeBytes,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return d
}

func fromDBModels(models Documents) domain.Documents {
	ds := make(domain.Documents, len(models))
	for idx, d := range models {
		ds[idx] = fromDBModel(d)
	}

	return ds
}

func fromDBOrphans(models OrphanedBlobs) domain.OrphanedBlobs {
	os := make(domain.OrphanedBlobs, len(models))
	for idx, o := range models {
		os[idx] = &domain.OrphanedBlob{
			ID:         o.ID,
			StorageKey: o.StorageKey,
			Reason:     o.Reason,
			Attempts:   o.Attempts,
			CreatedAt:  o.CreatedAt,
		}
	}

	return os
}
