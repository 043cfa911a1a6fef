package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStorageFailure(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.StorageFailure("delete", "cloudinary")
	m.StorageFailure("delete", "cloudinary")
	m.StorageFailure("update", "local")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.storageFailures.WithLabelValues("delete", "cloudinary")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storageFailures.WithLabelValues("update", "local")))
}

func TestAttachmentOperation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.AttachmentOperation("local", "upload", nil)
	m.AttachmentOperation("local", "delete", errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.attachmentOps.WithLabelValues("local", "upload", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.attachmentOps.WithLabelValues("local", "delete", "error")))
}

func TestObserveHTTPRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveHTTPRequest("POST", "/api/auth/login", "200", 15*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/auth/login", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.httpDuration))
}
