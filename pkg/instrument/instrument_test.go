package instrument

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.JointTableBuilt()
	m.JointTableBuilt()
	m.MutualInformationQueried()
	m.CacheHit()
	m.FeatureSelected(3 * time.Millisecond)
	m.DatasetLoaded(1200)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.jointTables))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.miQueries))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.selected))
	assert.Equal(t, 1200.0, testutil.ToFloat64(m.datasetBytes))
	count, err := testutil.GatherAndCount(m.registry)
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.JointTableBuilt()
		m.MutualInformationQueried()
		m.CacheHit()
		m.FeatureSelected(time.Second)
		m.DatasetLoaded(1)
	})
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteFile(filepath.Join(t.TempDir(), "none.prom")))
}

func TestWriteFile(t *testing.T) {
	m := New()
	m.MutualInformationQueried()

	path := filepath.Join(t.TempDir(), "fastmrmr.prom")
	require.NoError(t, m.WriteFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "fastmrmr_mutual_information_queries_total 1")
}
