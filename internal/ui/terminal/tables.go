package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nightcircle/internal/reference"
)

// WriteBossList prints the roster with health and weaknesses.
func WriteBossList(w io.Writer, bosses []reference.Boss) error {
	rows := make([][]string, 0, len(bosses))
	for _, boss := range bosses {
		health, weak := "-", "-"
		if boss.Stats != nil {
			health = strconv.Itoa(boss.Stats.Health)
		}
		if len(boss.Weaknesses) > 0 {
			weak = strings.Join(boss.Weaknesses, ", ")
		}
		rows = append(rows, []string{boss.Name, boss.Title, health, weak})
	}
	_, err := io.WriteString(w, formatTable([]string{"BOSS", "TITLE", "HEALTH", "WEAK TO"}, rows))
	return err
}

// WriteBossDetail prints negations, resistances and tips for one boss.
func WriteBossDetail(w io.Writer, boss reference.Boss) error {
	var builder strings.Builder
	builder.WriteString(headerStyle.Render(boss.Name + ", " + boss.Title))
	builder.WriteByte('\n')
	if boss.AltName != "" {
		builder.WriteString(mutedStyle.Render(boss.AltName))
		builder.WriteByte('\n')
	}
	if boss.Stats == nil {
		builder.WriteString("no stats available\n")
		_, err := io.WriteString(w, builder.String())
		return err
	}

	fmt.Fprintf(&builder, "health %d  poise %d\n\n", boss.Stats.Health, boss.Stats.Poise)

	negations := make([][]string, 0, len(boss.Stats.Negations))
	for _, negation := range boss.Stats.Negations {
		value := fmt.Sprintf("%d%%", negation.Value)
		if negation.Value < 0 {
			value = alertStyle.Render(value)
		}
		negations = append(negations, []string{negation.Kind, value})
	}
	builder.WriteString(formatTable([]string{"DAMAGE", "NEGATION"}, negations))
	builder.WriteByte('\n')

	resistances := make([][]string, 0, len(boss.Stats.Resistances))
	for _, resistance := range boss.Stats.Resistances {
		resistances = append(resistances, []string{resistance.Kind, resistance.String()})
	}
	builder.WriteString(formatTable([]string{"STATUS", "RESISTANCE"}, resistances))

	if len(boss.Tips) > 0 {
		builder.WriteByte('\n')
		for _, tip := range boss.Tips {
			fmt.Fprintf(&builder, "- %s\n", tip)
		}
	}
	_, err := io.WriteString(w, builder.String())
	return err
}

// WriteWeapons prints attack power per character and the best picks.
func WriteWeapons(w io.Writer, weapons []reference.WeaponScaling) error {
	headers := append([]string{"WEAPON"}, upper(reference.Characters)...)
	headers = append(headers, "BEST")

	rows := make([][]string, 0, len(weapons))
	for _, weapon := range weapons {
		name := weapon.Name
		if weapon.Status != "" {
			name += " (" + weapon.Status + ")"
		}
		row := []string{name}
		values := weapon.Values()
		for _, value := range values {
			cell := strconv.Itoa(value)
			if reference.ScalingTier(value, values) == reference.TierHigh {
				cell = explorationStyle.Render(cell)
			}
			row = append(row, cell)
		}
		rows = append(rows, append(row, weapon.Recommendation()))
	}
	_, err := io.WriteString(w, formatTable(headers, rows))
	return err
}

// WritePowers prints one power per line.
func WritePowers(w io.Writer, powers []reference.Power) error {
	var builder strings.Builder
	for _, power := range powers {
		builder.WriteString(headerStyle.Render(power.Name))
		if power.Effect != "" {
			builder.WriteString("  ")
			builder.WriteString(power.Effect)
		}
		builder.WriteByte('\n')
	}
	_, err := io.WriteString(w, builder.String())
	return err
}

// formatTable aligns columns by display width, so styled cells line up.
func formatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for index, header := range headers {
		widths[index] = lipgloss.Width(header)
	}
	for _, row := range rows {
		for index, cell := range row {
			if index < len(widths) && lipgloss.Width(cell) > widths[index] {
				widths[index] = lipgloss.Width(cell)
			}
		}
	}

	var builder strings.Builder
	writeRow := func(row []string) {
		for index, cell := range row {
			builder.WriteString(cell)
			if index == len(row)-1 {
				builder.WriteByte('\n')
				continue
			}
			padding := 2
			if index < len(widths) {
				padding += widths[index] - lipgloss.Width(cell)
			}
			builder.WriteString(strings.Repeat(" ", padding))
		}
	}

	styled := make([]string, len(headers))
	for index, header := range headers {
		styled[index] = mutedStyle.Render(header)
	}
	writeRow(styled)
	for _, row := range rows {
		writeRow(row)
	}
	return builder.String()
}

func upper(values []string) []string {
	result := make([]string, len(values))
	for index, value := range values {
		result[index] = strings.ToUpper(value)
	}
	return result
}
