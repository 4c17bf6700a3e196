package reference

import (
	"io/fs"

	"github.com/rs/zerolog"
)

const (
	BossTablePath   = "bosses.csv"
	WeaponTablePath = "weapons.csv"
	PowerTablePath  = "powers.yaml"
)

// Catalog bundles every reference table.
type Catalog struct {
	Bosses  []Boss
	Weapons []WeaponScaling
	Powers  []Power
}

// Load reads all tables from fsys. It never fails; missing tables are empty.
func Load(fsys fs.FS, logger zerolog.Logger) Catalog {
	logger = logger.With().Str("component", "reference").Logger()
	return Catalog{
		Bosses:  LoadBosses(fsys, BossTablePath, logger),
		Weapons: LoadWeapons(fsys, WeaponTablePath, logger),
		Powers:  LoadPowers(fsys, PowerTablePath, logger),
	}
}
