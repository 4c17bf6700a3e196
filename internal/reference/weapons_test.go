package reference

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const weaponTable = `Attack Power at level 12,,,,,,,,
Weapon,Wylder,Guardian,Ironeye,Duchess,Raider,Revenant,Recluse,Executor
Uchigatana; 55 Bleed,412,398,405,420,401,377,381,446
Longsword,430,425,402,411,437,380,379,428
,1,2,3,4,5,6,7,8
Flat Blade,400,400,400,400,400,400,400,400
Stub,300
`

func TestParseWeaponTable(t *testing.T) {
	weapons := ParseWeaponTable(strings.NewReader(weaponTable))
	require.Len(t, weapons, 4)

	uchigatana := weapons[0]
	require.Equal(t, "Uchigatana", uchigatana.Name)
	require.Equal(t, "55 Bleed", uchigatana.Status)
	require.Equal(t, 446, uchigatana.Value("Executor"))
	require.Equal(t, []int{412, 398, 405, 420, 401, 377, 381, 446}, uchigatana.Values())

	require.Equal(t, "Longsword", weapons[1].Name)
	require.Empty(t, weapons[1].Status)

	stub := weapons[3]
	require.Equal(t, 300, stub.Value("Wylder"))
	require.Zero(t, stub.Value("Executor"))
}

func TestParseWeaponTableWithoutHeader(t *testing.T) {
	weapons := ParseWeaponTable(strings.NewReader("Longsword,430,425\n"))
	require.Empty(t, weapons)
}

func TestRecommendation(t *testing.T) {
	weapons := ParseWeaponTable(strings.NewReader(weaponTable))
	require.Equal(t, "Executor > Duchess > Wylder", weapons[0].Recommendation())
	require.Equal(t, "Raider > Wylder > Executor", weapons[1].Recommendation())
	// ties keep the preferred ordering
	require.Equal(t, "Executor > Ironeye > Wylder", weapons[2].Recommendation())
}

func TestScalingTier(t *testing.T) {
	values := []int{100, 150, 200}
	require.Equal(t, TierLow, ScalingTier(100, values))
	require.Equal(t, TierMid, ScalingTier(150, values))
	require.Equal(t, TierHigh, ScalingTier(200, values))
	require.Equal(t, TierMid, ScalingTier(5, []int{5, 5}))
	require.Equal(t, TierMid, ScalingTier(5, nil))
}

func TestSearchWeapons(t *testing.T) {
	weapons := ParseWeaponTable(strings.NewReader(weaponTable))

	require.Len(t, SearchWeapons(weapons, ""), len(weapons))

	bleed := SearchWeapons(weapons, "BLEED")
	require.Len(t, bleed, 1)
	require.Equal(t, "Uchigatana", bleed[0].Name)

	blades := SearchWeapons(weapons, "blade")
	require.Len(t, blades, 1)
	require.Equal(t, "Flat Blade", blades[0].Name)

	require.Empty(t, SearchWeapons(weapons, "bow"))
}

func TestLoadWeaponsMissingTable(t *testing.T) {
	require.Empty(t, LoadWeapons(fstest.MapFS{}, WeaponTablePath, zerolog.Nop()))
}
