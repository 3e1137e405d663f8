package export

import (
	"context"
	"testing"
	"time"

	locks "github.com/opdss/report/locker"
	"github.com/opdss/report/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(metrics.Config{Enabled: true, Namespace: "test"}, reg)
	s := NewService(ServiceConfig{MaxRows: 10, Organization: "Hogar Central"}, nil, collector, nil, WithNow(fixedNow))

	res, err := s.Run(context.Background(), "user-1", FormatWord, scenario())
	require.NoError(t, err)
	assert.Equal(t, "test.docx", res.FileName)
	_, texts := documentTexts(t, res.Data)
	assert.Contains(t, texts, "Hogar Central")

	req := scenario()
	req.FileName = "bad.docx"
	_, err = s.Run(context.Background(), "user-1", FormatWord, req)
	assert.True(t, ErrInvalidRequest.Has(err))

	count, err := testutil.GatherAndCount(reg, "test_exports_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestServiceMaxRows(t *testing.T) {
	s := NewService(ServiceConfig{MaxRows: 1}, nil, nil, nil)
	_, err := s.Run(context.Background(), "t", FormatCsv, scenario())
	assert.ErrorIs(t, err, ErrMaximumLimit)
}

func TestServiceBusy(t *testing.T) {
	lockers := locks.NewMemory()
	s := NewService(ServiceConfig{}, lockers, nil, nil)

	held := lockers.NewLocker("export:user-1:word")
	require.NoError(t, held.Lock(time.Minute))

	_, err := s.Run(context.Background(), "user-1", FormatWord, scenario())
	assert.True(t, ErrBusy.Has(err))

	// 其他格式和其他触发源不受影响
	_, err = s.Run(context.Background(), "user-1", FormatPrint, scenario())
	assert.NoError(t, err)
	_, err = s.Run(context.Background(), "user-2", FormatWord, scenario())
	assert.NoError(t, err)

	require.NoError(t, held.Unlock())
	_, err = s.Run(context.Background(), "user-1", FormatWord, scenario())
	assert.NoError(t, err)
}
