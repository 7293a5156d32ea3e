package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_RecordOperation(t *testing.T) {
	r := NewRecorder()

	r.RecordOperation("register", nil)
	r.RecordOperation("register", nil)
	r.RecordOperation("register", errors.New("duplicate"))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.operations.WithLabelValues("register", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operations.WithLabelValues("register", "error")))
}

func TestRecorder_RecordHTTPRequest(t *testing.T) {
	r := NewRecorder()

	r.RecordHTTPRequest(http.MethodGet, "/posts/:id", http.StatusOK, 5*time.Millisecond)
	r.RecordHTTPRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("GET", "/posts/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.RecordOperation("like_post", nil)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `minex_domain_operations_total{operation="like_post",outcome="success"} 1`)
}

func TestRecorder_RecordRelayEvent(t *testing.T) {
	r := NewRecorder()

	r.RecordRelayEvent("comment")
	r.RecordRelayEvent("")

	assert.Equal(t, 1.0, testutil.ToFloat64(r.relayEvents.WithLabelValues("comment")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.relayEvents.WithLabelValues("unknown")))
}
