package event

import (
	"time"

	"github.com/google/uuid"
)

type (
	Action string
	Event  struct {
		ID         uuid.UUID `json:"event_id"`
		TS         time.Time `json:"time_stamp"`
		Action     Action    `json:"event_action"`
		DocumentID string    `json:"document_id,omitempty"`
		UserID     string    `json:"user_id,omitempty"`
		StorageKey string    `json:"storage_key,omitempty"`
		Filename   string    `json:"filename,omitempty"`
		Reason     string    `json:"reason,omitempty"`
	}
)

// Actions double as routing keys on the exchange.
const (
	ActionUploaded     Action = "document.uploaded"
	ActionRenamed      Action = "document.renamed"
	ActionDeleted      Action = "document.deleted"
	ActionBlobOrphaned Action = "document.blob_orphaned"
)

var Actions = []Action{
	ActionUploaded,
	ActionRenamed,
	ActionDeleted,
	ActionBlobOrphaned,
}

func New(action Action) Event {
	return Event{
		ID:     uuid.New(),
		TS:     time.Now().UTC(),
		Action: action,
	}
}
