package observability_test

import (
	"errors"
	"testing"
	"time"

	"github.com/aretw0/mjmerge/pkg/diagnostics"
	"github.com/aretw0/mjmerge/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveMerge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.ObserveMerge(3, 10*time.Millisecond, nil)
	m.ObserveMerge(1, 0, nil)
	m.ObserveMerge(2, 0, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Merges.WithLabelValues(observability.ResultMerged)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Merges.WithLabelValues(observability.ResultPassthrough)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Merges.WithLabelValues(observability.ResultFailed)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Robots))

	n, err := testutil.GatherAndCount(reg, "mjmerge_merge_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetrics_Sink(t *testing.T) {
	m := observability.NewMetrics(nil)
	rec := &diagnostics.Recorder{}
	sink := m.Sink(rec)

	sink.Report(diagnostics.Conflict{Section: "compiler"})
	sink.Report(diagnostics.Conflict{Section: "compiler"})
	sink.Report(diagnostics.Conflict{Section: "option/flag"})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Conflicts.WithLabelValues("compiler")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Conflicts.WithLabelValues("option/flag")))
	assert.Equal(t, 3, rec.Len())

	assert.NotPanics(t, func() { m.Sink(nil).Report(diagnostics.Conflict{Section: "visual/map"}) })
}
