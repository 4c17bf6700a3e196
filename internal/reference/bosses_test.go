package reference

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const bossHeader = "Name,,ID,Health,,Phys,,Strike,,Slash,,Pierce,,Magic,,Fire,,Ltng,,Holy,,,Poison,Rot,Bleed,Frost,Sleep,Madness,Blight,Poise\n"

const gladiusRow = `"Gladius, Beast of Night",,75000020,11328,,100,0,100,0,100,0,100,-10,100,0,100,50,100,0,100,-35,,542,252,252,542,154,Immune,Immune,120` + "\n"

func TestParseBossTableReadsColumns(t *testing.T) {
	rows := ParseBossTable(strings.NewReader(bossHeader + gladiusRow))
	require.Len(t, rows, 1)

	gladius := rows[0]
	require.Equal(t, "Gladius, Beast of Night", gladius.Name)
	require.Equal(t, "75000020", gladius.ID)
	require.Equal(t, 11328, gladius.Health)
	require.Equal(t, 120, gladius.Poise)
	require.Len(t, gladius.Negations, 8)
	require.Equal(t, Stat{Kind: "pierce", Value: -10}, gladius.Negations[3])
	require.Equal(t, Stat{Kind: "holy", Value: -35}, gladius.Negations[7])
	require.Len(t, gladius.Resistances, 7)
	require.Equal(t, 542, gladius.Resistances[0].Value)
	require.True(t, gladius.Resistances[5].Immune())
	require.Equal(t, "Immune", gladius.Resistances[6].String())
}

func TestParseBossTableSkipsMalformedRows(t *testing.T) {
	table := bossHeader +
		"Too,short,row\n" +
		"Average,,0,12000,,100,0,100,0,100,0,100,0,100,0,100,0,100,0,100,0,,1,1,1,1,1,1,1,1\n" +
		"Gappy,,1,2,,,,,100,0,100,0,100,0,100,0,100,0,100,0,,1,1,1,1,1,1,1,1,1\n" +
		",,1,2,,100,0,100,0,100,0,100,0,100,0,100,0,100,0,100,0,,1,1,1,1,1,1,1,1\n" +
		"\n" +
		gladiusRow

	rows := ParseBossTable(strings.NewReader(table))
	require.Len(t, rows, 1)
	require.Equal(t, "Gladius, Beast of Night", rows[0].Name)
}

func TestParseBossTableEmptyResistanceCells(t *testing.T) {
	row := "Ghost,,1,100,,100,0,100,0,100,0,100,0,100,0,100,0,100,0,100,0,,,154,154,154,154,,,100\n"
	rows := ParseBossTable(strings.NewReader(bossHeader + row))
	require.Len(t, rows, 1)

	poison := rows[0].Resistances[0]
	require.Equal(t, "poison", poison.Kind)
	require.True(t, poison.Blank)
	require.False(t, poison.Immune())
	require.Empty(t, poison.String())

	madness, blight := rows[0].Resistances[5], rows[0].Resistances[6]
	require.Equal(t, "madness", madness.Kind)
	require.True(t, madness.Immune())
	require.Equal(t, "blight", blight.Kind)
	require.True(t, blight.Immune())

	_, tips := WeaknessesAndTips(rows[0])
	require.Contains(t, tips, "Immune to madness")
	require.Contains(t, tips, "Immune to blight")
	require.NotContains(t, tips, "Immune to poison")
}

func TestMergeBossesFirstRowWins(t *testing.T) {
	rows := []BossStats{
		{Name: "Gnoster, Wisdom of Night (Moth)", Health: 1},
		{Name: "Gnoster, Wisdom of Night (Pest)", Health: 2},
	}
	merged := MergeBosses(BaseBosses(), rows)
	require.Len(t, merged, len(BaseBosses()))

	gnoster, ok := FindBoss(merged, "gnoster")
	require.True(t, ok)
	require.NotNil(t, gnoster.Stats)
	require.Equal(t, 1, gnoster.Stats.Health)

	adel, ok := FindBoss(merged, "Adel")
	require.True(t, ok)
	require.Nil(t, adel.Stats)
}

func TestWeaknessesAndTips(t *testing.T) {
	rows := ParseBossTable(strings.NewReader(bossHeader + gladiusRow))
	require.Len(t, rows, 1)

	weaknesses, tips := WeaknessesAndTips(rows[0])
	require.Equal(t, []string{"Pierce", "Holy"}, weaknesses)
	require.Contains(t, tips, "Vulnerable to holy damage (-35% negation)")
	require.Contains(t, tips, "Resistant to fire damage (50% negation)")
	require.Contains(t, tips, "Immune to madness")
	require.Contains(t, tips, "High poison resistance (542)")
	require.NotContains(t, tips, "High rot resistance (252)")
}

func TestFindBossByAltName(t *testing.T) {
	boss, ok := FindBoss(BaseBosses(), "  night aspect ")
	require.True(t, ok)
	require.Equal(t, "Heolstor", boss.Name)

	_, ok = FindBoss(BaseBosses(), "Margit")
	require.False(t, ok)
}

func TestLoadBossesDegradesToRoster(t *testing.T) {
	bosses := LoadBosses(fstest.MapFS{}, BossTablePath, zerolog.Nop())
	require.Equal(t, BaseBosses(), bosses)
}

func TestLoadBossesMergesTable(t *testing.T) {
	fsys := fstest.MapFS{BossTablePath: {Data: []byte(bossHeader + gladiusRow)}}
	bosses := LoadBosses(fsys, BossTablePath, zerolog.Nop())

	gladius, ok := FindBoss(bosses, "Gladius")
	require.True(t, ok)
	require.NotNil(t, gladius.Stats)
	require.Equal(t, []string{"Pierce", "Holy"}, gladius.Weaknesses)
}
