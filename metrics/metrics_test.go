package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordExport(t *testing.T) {
	c := NewCollector(Config{Enabled: true, Namespace: "test"}, prometheus.NewRegistry())
	require.NotNil(t, c)

	c.RecordExport("word", 2, 4096, 10*time.Millisecond, nil)
	c.RecordExport("word", 5, 0, time.Millisecond, errors.New("boom"))
	c.RecordExport("spreadsheet", 3, 8192, time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.exports.WithLabelValues("word", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.exports.WithLabelValues("word", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.rows.WithLabelValues("word")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.rows.WithLabelValues("spreadsheet")))
}

func TestStart(t *testing.T) {
	c := NewCollector(Config{Enabled: true}, nil)
	done := c.Start()
	assert.Equal(t, 1.0, testutil.ToFloat64(c.inFlight))
	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(c.inFlight))
}

func TestDisabled(t *testing.T) {
	c := NewCollector(Config{}, nil)
	assert.Nil(t, c)
	c.Start()()
	c.RecordExport("csv", 1, 1, time.Second, nil)
	assert.Nil(t, c.Registry())

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler(t *testing.T) {
	c := NewCollector(Config{Enabled: true}, nil)
	c.RecordExport("print", 1, 100, time.Millisecond, nil)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `reportx_exports_total{format="print",status="success"} 1`)
}
