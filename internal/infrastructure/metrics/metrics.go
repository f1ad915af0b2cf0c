package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// values of the "result" label
const (
	DocumentsUploaded    = "documents_uploaded_total"
	UploadsRejected      = "uploads_rejected_total"
	UploadsFailed        = "uploads_failed_total"
	DocumentsRenamed     = "documents_renamed_total"
	DocumentsDeleted     = "documents_deleted_total"
	BlobsOrphaned        = "blobs_orphaned_total"
	OrphansReconciled    = "orphans_reconciled_total"
	UsersRegistered      = "users_registered_total"
	PasswordsReset       = "passwords_reset_total"
	LoginsSucceeded      = "logins_succeeded_total"
	LoginsFailed         = "logins_failed_total"
	EventsDropped        = "events_dropped_total"
	EventsPublishFailure = "events_publish_failures_total"
)

func NewCounter() *prometheus.CounterVec {
	return NewCounterWith(prometheus.DefaultRegisterer)
}

func NewCounterWith(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docmanager",
			Name:      "general_counters",
		},
		[]string{"result"})
}

// Inc tolerates a nil vec so components can run without metrics.
func Inc(c *prometheus.CounterVec, result string) {
	if c == nil {
		return
	}
	c.WithLabelValues(result).Inc()
}
