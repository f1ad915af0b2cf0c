package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInc(t *testing.T) {
	c := NewCounterWith(prometheus.NewRegistry())

	Inc(c, DocumentsUploaded)
	Inc(c, DocumentsUploaded)
	Inc(c, BlobsOrphaned)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.WithLabelValues(DocumentsUploaded)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.WithLabelValues(BlobsOrphaned)))
}

func TestInc_NilVec(t *testing.T) {
	assert.NotPanics(t, func() { Inc(nil, DocumentsDeleted) })
}
