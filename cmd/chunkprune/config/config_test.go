package config_test

import (
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/chunkprune/cmd/chunkprune/config"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.New(config.Prm{}, config.WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
		require.Error(t, err)
	})

	t.Run("sub", func(t *testing.T) {
		t.Setenv("CHUNKPRUNE_A_B_C", "value")

		c, err := config.New(config.Prm{})
		require.NoError(t, err)

		a := c.Sub("a")
		b := a.Sub("b")
		require.Equal(t, "value", config.StringSafe(b, "c"))
		require.True(t, b.IsSet("c"))
		require.False(t, a.IsSet("c"))
		require.Nil(t, a.Value("c"))
	})
}
