package resources

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataContainsReferenceTables(t *testing.T) {
	for _, name := range []string{"bosses.csv", "weapons.csv", "powers.yaml"} {
		info, err := fs.Stat(Data(), name)
		require.NoError(t, err, name)
		require.Positive(t, info.Size(), name)
	}
}

func TestIconIsCached(t *testing.T) {
	first, err := Icon("logo_active.svg")
	require.NoError(t, err)
	second := MustIcon("logo_active.svg")
	require.Same(t, first, second)
	require.Contains(t, string(first.Content()), "<svg")
}

func TestMissingIcon(t *testing.T) {
	_, err := Icon("missing.svg")
	require.Error(t, err)
	require.Panics(t, func() { MustIcon("missing.svg") })
}
