// Package reference loads the static lookup tables shipped with the app:
// boss stats, power effects and weapon scaling. Loading never fails hard;
// malformed rows are skipped and unreadable tables degrade to partial data.
package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Stat is a named numeric value such as a damage negation.
type Stat struct {
	Kind  string
	Value int
}

// Resistance is a status buildup resistance, either numeric or a label like Immune.
// Blank marks a cell the spreadsheet leaves empty.
type Resistance struct {
	Kind  string
	Value int
	Label string
	Blank bool
}

// Immune reports whether the boss cannot be afflicted at all.
func (resistance Resistance) Immune() bool {
	return strings.EqualFold(resistance.Label, "Immune")
}

func (resistance Resistance) String() string {
	if resistance.Blank {
		return ""
	}
	if resistance.Label != "" {
		return resistance.Label
	}
	return strconv.Itoa(resistance.Value)
}

// BossStats is one parsed row of the boss spreadsheet.
type BossStats struct {
	Name        string
	ID          string
	Health      int
	Negations   []Stat
	Resistances []Resistance
	Poise       int
}

// Boss joins roster information with parsed stats.
type Boss struct {
	Name       string
	AltName    string
	Title      string
	Stats      *BossStats
	Weaknesses []string
	Tips       []string
}

var negationColumns = []struct {
	kind   string
	column int
}{
	{"physical", 6},
	{"strike", 8},
	{"slash", 10},
	{"pierce", 12},
	{"magic", 14},
	{"fire", 16},
	{"lightning", 18},
	{"holy", 20},
}

var resistanceColumns = []struct {
	kind   string
	column int
}{
	{"poison", 22},
	{"rot", 23},
	{"bleed", 24},
	{"frost", 25},
	{"sleep", 26},
	{"madness", 27},
	{"blight", 28},
}

// The sheet leaves these cells empty for bosses that cannot be afflicted.
var blankMeansImmune = map[string]bool{
	"madness": true,
	"blight":  true,
}

const (
	bossColumnCount   = 30
	bossHealthColumn  = 3
	bossIDColumn      = 2
	bossPoiseColumn   = 29
	weakNegation      = 0
	resistantNegation = 20
	highResistance    = 400
)

// BaseBosses returns the roster used when no spreadsheet data is available.
func BaseBosses() []Boss {
	return []Boss{
		{Name: "Gladius", AltName: "Tricephalos", Title: "Beast of Night"},
		{Name: "Adel", AltName: "Gaping Maw", Title: "Baron of Night"},
		{Name: "Gnoster", AltName: "Sentient Pest", Title: "Wisdom of Night"},
		{Name: "Maris", AltName: "Augur", Title: "Fathom of Night"},
		{Name: "Libra", AltName: "Equilibrius Beast", Title: "Creature of Night"},
		{Name: "Fulghor", AltName: "Darkdrift Knight", Title: "Champion of Nightglow"},
		{Name: "Caligo", AltName: "Fissure in the Fog", Title: "Miasma of Night"},
		{Name: "Heolstor", AltName: "Night Aspect", Title: "the Nightlord"},
	}
}

var spreadsheetNames = map[string]string{
	"Gladius, Beast of Night":         "Gladius",
	"Adel, Baron of Night":            "Adel",
	"Gnoster, Wisdom of Night (Moth)": "Gnoster",
	"Gnoster, Wisdom of Night (Pest)": "Gnoster",
	"Maris, Fathom of Night":          "Maris",
	"Libra, Creature of Night":        "Libra",
	"Fulghor, Champion of Nightglow":  "Fulghor",
	"Caligo, Miasma of Night":         "Caligo",
	"Heolstor the Nightlord":          "Heolstor",
}

// CanonicalBossName maps a spreadsheet row name to the roster name.
func CanonicalBossName(name string) string {
	if mapped, ok := spreadsheetNames[name]; ok {
		return mapped
	}
	return name
}

// ParseBossTable reads the boss spreadsheet. The first line is a header.
// Blank rows, summary rows and rows with too few columns are skipped.
func ParseBossTable(reader io.Reader) []BossStats {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	var bosses []BossStats
	for line := 0; ; line++ {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			break
		}
		if line == 0 {
			continue
		}
		if stats, ok := parseBossRecord(record); ok {
			bosses = append(bosses, stats)
		}
	}
	return bosses
}

func parseBossRecord(record []string) (BossStats, bool) {
	for index := range record {
		record[index] = strings.TrimSpace(record[index])
	}
	if len(record) < bossColumnCount || record[0] == "" {
		return BossStats{}, false
	}
	if strings.HasPrefix(record[0], "Average") || hasEmptyRun(record, 3) {
		return BossStats{}, false
	}

	stats := BossStats{
		Name:   record[0],
		ID:     record[bossIDColumn],
		Health: atoiOrZero(record[bossHealthColumn]),
		Poise:  atoiOrZero(record[bossPoiseColumn]),
	}
	for _, column := range negationColumns {
		stats.Negations = append(stats.Negations, Stat{Kind: column.kind, Value: atoiOrZero(record[column.column])})
	}
	for _, column := range resistanceColumns {
		stats.Resistances = append(stats.Resistances, parseResistance(column.kind, record[column.column]))
	}
	return stats, true
}

func parseResistance(kind, raw string) Resistance {
	if raw == "" {
		if blankMeansImmune[kind] {
			return Resistance{Kind: kind, Label: "Immune"}
		}
		return Resistance{Kind: kind, Blank: true}
	}
	if value, err := strconv.Atoi(raw); err == nil {
		return Resistance{Kind: kind, Value: value}
	}
	return Resistance{Kind: kind, Label: raw}
}

// hasEmptyRun reports whether the record contains at least n consecutive empty cells.
func hasEmptyRun(record []string, n int) bool {
	run := 0
	for _, cell := range record {
		if cell != "" {
			run = 0
			continue
		}
		run++
		if run >= n {
			return true
		}
	}
	return false
}

// MergeBosses attaches parsed stats to the roster. When several rows map to
// the same boss, the first one wins.
func MergeBosses(roster []Boss, rows []BossStats) []Boss {
	byName := make(map[string]BossStats, len(rows))
	for _, row := range rows {
		name := CanonicalBossName(row.Name)
		if _, exists := byName[name]; !exists {
			byName[name] = row
		}
	}

	merged := make([]Boss, 0, len(roster))
	for _, boss := range roster {
		if stats, ok := byName[boss.Name]; ok {
			stats := stats
			boss.Stats = &stats
			boss.Weaknesses, boss.Tips = WeaknessesAndTips(stats)
		}
		merged = append(merged, boss)
	}
	return merged
}

// WeaknessesAndTips derives player advice from negations and resistances.
func WeaknessesAndTips(stats BossStats) ([]string, []string) {
	var weaknesses, tips []string
	for _, negation := range stats.Negations {
		switch {
		case negation.Value < weakNegation:
			weaknesses = append(weaknesses, capitalize(negation.Kind))
			tips = append(tips, fmt.Sprintf("Vulnerable to %s damage (%d%% negation)", negation.Kind, negation.Value))
		case negation.Value > resistantNegation:
			tips = append(tips, fmt.Sprintf("Resistant to %s damage (%d%% negation)", negation.Kind, negation.Value))
		}
	}
	for _, resistance := range stats.Resistances {
		switch {
		case resistance.Immune():
			tips = append(tips, fmt.Sprintf("Immune to %s", resistance.Kind))
		case !resistance.Blank && resistance.Label == "" && resistance.Value > highResistance:
			tips = append(tips, fmt.Sprintf("High %s resistance (%d)", resistance.Kind, resistance.Value))
		}
	}
	return weaknesses, tips
}

// LoadBosses reads the spreadsheet from fsys and merges it with the roster.
// Read failures degrade to the bare roster.
func LoadBosses(fsys fs.FS, path string, logger zerolog.Logger) []Boss {
	file, err := fsys.Open(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("boss table unavailable, using roster only")
		return BaseBosses()
	}
	defer file.Close()

	rows := ParseBossTable(file)
	logger.Debug().Int("rows", len(rows)).Str("path", path).Msg("boss table loaded")
	return MergeBosses(BaseBosses(), rows)
}

// FindBoss looks a boss up by name or alternative name, ignoring case.
func FindBoss(bosses []Boss, name string) (Boss, bool) {
	name = strings.TrimSpace(name)
	for _, boss := range bosses {
		if strings.EqualFold(boss.Name, name) || strings.EqualFold(boss.AltName, name) {
			return boss, true
		}
	}
	return Boss{}, false
}

func atoiOrZero(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}

func capitalize(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
