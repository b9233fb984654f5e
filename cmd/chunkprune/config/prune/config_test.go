package pruneconfig_test

import (
	"runtime"
	"testing"

	"github.com/nspcc-dev/chunkprune/cmd/chunkprune/config"
	pruneconfig "github.com/nspcc-dev/chunkprune/cmd/chunkprune/config/prune"
	configtest "github.com/nspcc-dev/chunkprune/cmd/chunkprune/config/test"
	"github.com/nspcc-dev/chunkprune/pkg/pruner"
	"github.com/stretchr/testify/require"
)

func TestPruneSection(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		empty := configtest.EmptyConfig(t)

		_, set, err := pruneconfig.Threshold(empty)
		require.NoError(t, err)
		require.False(t, set)
		require.Equal(t, runtime.NumCPU(), pruneconfig.Workers(empty))
		require.False(t, pruneconfig.DryRun(empty))
		require.Equal(t, pruner.DefaultRoots, pruneconfig.Roots(empty))
	})

	const path = "../example/chunkprune"

	var fileConfigTest = func(c *config.Config) {
		threshold, set, err := pruneconfig.Threshold(c)
		require.NoError(t, err)
		require.True(t, set)
		require.EqualValues(t, 72000, threshold)
		require.Equal(t, 3, pruneconfig.Workers(c))
		require.True(t, pruneconfig.DryRun(c))
		require.Equal(t, []string{"region", "DIM-1/region"}, pruneconfig.Roots(c))
	}

	configtest.ForEachFileType(t, path, fileConfigTest)

	t.Run("ENV", func(t *testing.T) {
		configtest.ForEnvFileType(t, path, fileConfigTest)
	})

	t.Run("invalid threshold", func(t *testing.T) {
		t.Setenv("CHUNKPRUNE_PRUNE_THRESHOLD", "many")

		_, _, err := pruneconfig.Threshold(configtest.EmptyConfig(t))
		require.Error(t, err)
	})
}
