package document

import (
	"docmanager-api/internal/domain/document"
)

func ToResponseDocument(dDomain document.Document) Document {
	var d = Document{
		ID:               dDomain.ID,
		Filename:         dDomain.StorageKey,
		OriginalFilename: dDomain.OriginalFilename,
		URL:              dDomain.URL,
		UploadedBy:       dDomain.OwnerID.String(),
		Category:         dDomain.Category,
		Size:             dDomain.Size,
		MimeType:         dDomain.MimeType,
		CreatedAt:        dDomain.CreatedAt,
		UpdatedAt:        dDomain.UpdatedAt,
	}

	return d
}

func ToResponseDocuments(dsDomain document.Documents) Documents {
	ds := make(Documents, len(dsDomain))
	for idx, d := range dsDomain {
		ds[idx] = ToResponseDocument(*d)
	}

	return ds
}

// ToAdminDocuments names the uploader instead of exposing only the id.
func ToAdminDocuments(dsDomain document.Documents) Documents {
	ds := make(Documents, len(dsDomain))
	for idx, d := range dsDomain {
		ds[idx] = ToResponseDocument(*d)
		ownerID := d.OwnerID
		ds[idx].UploadedBy = d.OwnerName
		ds[idx].UploaderID = &ownerID
	}

	return ds
}

func ToResponseStats(s document.Stats) Stats {
	return Stats{
		Total:      s.Total,
		PDFCount:   s.PDFCount,
		ImageCount: s.ImageCount,
		TotalSize:  s.TotalSize,
	}
}
