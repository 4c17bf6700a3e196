package reference

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Characters lists the playable characters in spreadsheet column order.
var Characters = []string{"Wylder", "Guardian", "Ironeye", "Duchess", "Raider", "Revenant", "Recluse", "Executor"}

// recommendationOrder breaks ties when ranking characters for a weapon.
var recommendationOrder = []string{"Executor", "Ironeye", "Wylder", "Duchess", "Guardian", "Raider", "Revenant", "Recluse"}

var statusSuffix = regexp.MustCompile(`;\s*(\d+\s*\w+)`)

// WeaponScaling is the attack power a weapon reaches on every character.
type WeaponScaling struct {
	Name    string
	Status  string
	Scaling map[string]int
}

// Value returns the attack power for a character.
func (weapon WeaponScaling) Value(character string) int {
	return weapon.Scaling[character]
}

// Values returns the attack power in Characters order.
func (weapon WeaponScaling) Values() []int {
	values := make([]int, 0, len(Characters))
	for _, character := range Characters {
		values = append(values, weapon.Scaling[character])
	}
	return values
}

// Recommendation names the three characters that get the most out of the weapon.
func (weapon WeaponScaling) Recommendation() string {
	ranked := append([]string(nil), recommendationOrder...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return weapon.Scaling[ranked[i]] > weapon.Scaling[ranked[j]]
	})
	return strings.Join(ranked[:3], " > ")
}

// Tier classifies a scaling value relative to the weapon's own range.
type Tier string

const (
	TierLow  Tier = "low"
	TierMid  Tier = "mid"
	TierHigh Tier = "high"
)

// ScalingTier buckets value into thirds of the min..max range of all.
func ScalingTier(value int, all []int) Tier {
	if len(all) == 0 {
		return TierMid
	}
	low, high := all[0], all[0]
	for _, candidate := range all[1:] {
		if candidate < low {
			low = candidate
		}
		if candidate > high {
			high = candidate
		}
	}
	if high == low {
		return TierMid
	}
	normalized := float64(value-low) / float64(high-low)
	switch {
	case normalized < 0.33:
		return TierLow
	case normalized < 0.67:
		return TierMid
	default:
		return TierHigh
	}
}

// ParseWeaponTable reads the scaling spreadsheet. Rows before the header row
// (first cell "Weapon") are notes and are ignored, as are rows without a name.
func ParseWeaponTable(reader io.Reader) []WeaponScaling {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	var weapons []WeaponScaling
	headerSeen := false
	for {
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
		if len(record) == 0 {
			continue
		}
		if !headerSeen {
			headerSeen = strings.TrimSpace(record[0]) == "Weapon"
			continue
		}
		if weapon, ok := parseWeaponRecord(record); ok {
			weapons = append(weapons, weapon)
		}
	}
	return weapons
}

func parseWeaponRecord(record []string) (WeaponScaling, bool) {
	fullName := strings.TrimSpace(record[0])
	if fullName == "" {
		return WeaponScaling{}, false
	}

	weapon := WeaponScaling{
		Name:    strings.TrimSpace(statusSuffix.ReplaceAllString(fullName, "")),
		Scaling: make(map[string]int, len(Characters)),
	}
	if match := statusSuffix.FindStringSubmatch(fullName); match != nil {
		weapon.Status = match[1]
	}
	for index, character := range Characters {
		if column := index + 1; column < len(record) {
			weapon.Scaling[character] = atoiOrZero(record[column])
		}
	}
	return weapon, true
}

// SearchWeapons filters by name or status effect, ignoring case. A blank term matches everything.
func SearchWeapons(weapons []WeaponScaling, term string) []WeaponScaling {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]WeaponScaling(nil), weapons...)
	}
	var matches []WeaponScaling
	for _, weapon := range weapons {
		if strings.Contains(strings.ToLower(weapon.Name), term) ||
			(weapon.Status != "" && strings.Contains(strings.ToLower(weapon.Status), term)) {
			matches = append(matches, weapon)
		}
	}
	return matches
}

// LoadWeapons reads the scaling spreadsheet from fsys. Read failures yield an empty table.
func LoadWeapons(fsys fs.FS, path string, logger zerolog.Logger) []WeaponScaling {
	file, err := fsys.Open(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("weapon table unavailable")
		return nil
	}
	defer file.Close()

	weapons := ParseWeaponTable(file)
	logger.Debug().Int("rows", len(weapons)).Str("path", path).Msg("weapon table loaded")
	return weapons
}

