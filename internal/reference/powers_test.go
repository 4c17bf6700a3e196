package reference

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const powersDocument = `powers:
  - name: Improved Dexterity
    effect: Raises dexterity by 3.
  - name: "  "
    effect: dropped
  - name: Holy Resistance
    effect: Reduces holy damage taken.
`

func TestParsePowers(t *testing.T) {
	powers, err := ParsePowers(strings.NewReader(powersDocument))
	require.NoError(t, err)
	require.Equal(t, []Power{
		{Name: "Improved Dexterity", Effect: "Raises dexterity by 3."},
		{Name: "Holy Resistance", Effect: "Reduces holy damage taken."},
	}, powers)
}

func TestParsePowersEmptyAndMalformed(t *testing.T) {
	powers, err := ParsePowers(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, powers)

	_, err = ParsePowers(strings.NewReader("powers: [unterminated"))
	require.Error(t, err)
}

func TestSearchPowers(t *testing.T) {
	powers, err := ParsePowers(strings.NewReader(powersDocument))
	require.NoError(t, err)

	require.Empty(t, SearchPowers(powers, "   "))
	require.Len(t, SearchPowers(powers, "holy"), 1)
	require.Len(t, SearchPowers(powers, "DEXTERITY"), 1)
	require.Empty(t, SearchPowers(powers, "frost"))
}

func TestLoadPowersMalformedDegrades(t *testing.T) {
	fsys := fstest.MapFS{PowerTablePath: {Data: []byte("powers: {")}}
	require.Empty(t, LoadPowers(fsys, PowerTablePath, zerolog.Nop()))
}
