package reference

import (
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Power is a special power and what it does.
type Power struct {
	Name   string `yaml:"name"`
	Effect string `yaml:"effect"`
}

type powersFile struct {
	Powers []Power `yaml:"powers"`
}

// ParsePowers decodes the powers YAML document. Entries without a name are dropped.
func ParsePowers(reader io.Reader) ([]Power, error) {
	var file powersFile
	if err := yaml.NewDecoder(reader).Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parse powers yaml: %w", err)
	}

	powers := make([]Power, 0, len(file.Powers))
	for _, power := range file.Powers {
		power.Name = strings.TrimSpace(power.Name)
		power.Effect = strings.TrimSpace(power.Effect)
		if power.Name == "" {
			continue
		}
		powers = append(powers, power)
	}
	return powers, nil
}

// SearchPowers returns powers whose name or effect contains term, ignoring case.
// A blank term returns nothing.
func SearchPowers(powers []Power, term string) []Power {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var matches []Power
	for _, power := range powers {
		if strings.Contains(strings.ToLower(power.Name), term) ||
			strings.Contains(strings.ToLower(power.Effect), term) {
			matches = append(matches, power)
		}
	}
	return matches
}

// LoadPowers reads the powers table from fsys. Failures yield an empty table.
func LoadPowers(fsys fs.FS, path string, logger zerolog.Logger) []Power {
	file, err := fsys.Open(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("powers table unavailable")
		return nil
	}
	defer file.Close()

	powers, err := ParsePowers(file)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("powers table malformed")
		return nil
	}
	logger.Debug().Int("rows", len(powers)).Str("path", path).Msg("powers table loaded")
	return powers
}
