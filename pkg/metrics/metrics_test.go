package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nspcc-dev/chunkprune/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrunerMetrics(t *testing.T) {
	m := metrics.NewPrunerMetrics("v0.1.0")

	m.IncRegions("region", "deleted")
	m.IncRegions("region", "deleted")
	m.IncRegions("region", "kept")
	m.IncRegions("DIM1/region", "failed")
	m.AddReclaimedBytes("region", 8192)
	m.AddReclaimedBytes("region", 4096)

	n, err := testutil.GatherAndCount(m.Gatherer(), "chunkprune_regions_total")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	s, err := m.Summary()
	require.NoError(t, err)
	require.Len(t, s, 2)
	require.Equal(t, map[string]uint64{"deleted": 2, "kept": 1}, s["region"].Results)
	require.EqualValues(t, 12288, s["region"].ReclaimedBytes)
	require.Equal(t, map[string]uint64{"failed": 1}, s["DIM1/region"].Results)
	require.Zero(t, s["DIM1/region"].ReclaimedBytes)

	t.Run("textfile", func(t *testing.T) {
		m.SetLastRun(time.Unix(1700000000, 0), 3*time.Second)

		path := filepath.Join(t.TempDir(), "chunkprune.prom")
		require.NoError(t, m.WriteTextfile(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), `chunkprune_regions_total{result="deleted",root="region"} 2`)
		require.Contains(t, string(data), `chunkprune_last_run_duration_seconds 3`)
		require.Contains(t, string(data), `chunkprune_version{version="v0.1.0"} 1`)
	})
}
