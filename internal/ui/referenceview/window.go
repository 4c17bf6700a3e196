// Package referenceview is the desktop browser for the reference tables.
package referenceview

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"nightcircle/internal/reference"
)

// Window shows bosses, powers and weapon scaling in tabs.
type Window struct {
	window  fyne.Window
	catalog reference.Catalog
}

// New creates the reference window.
func New(app fyne.App, catalog reference.Catalog) *Window {
	window := app.NewWindow("NightCircle Reference")
	browser := &Window{window: window, catalog: catalog}

	tabs := container.NewAppTabs(
		container.NewTabItem("Bosses", browser.bossesTab()),
		container.NewTabItem("Powers", browser.powersTab()),
		container.NewTabItem("Weapons", browser.weaponsTab()),
	)
	window.SetContent(tabs)
	window.Resize(fyne.NewSize(640, 480))
	window.SetCloseIntercept(func() {
		window.Hide()
	})
	return browser
}

// Show displays the reference window.
func (browser *Window) Show() {
	browser.window.Show()
	browser.window.RequestFocus()
}

func (browser *Window) bossesTab() fyne.CanvasObject {
	bosses := browser.catalog.Bosses
	detail := widget.NewLabel("Select a boss.")
	detail.Wrapping = fyne.TextWrapWord

	list := widget.NewList(
		func() int { return len(bosses) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			item.(*widget.Label).SetText(bosses[id].Name)
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		detail.SetText(BossDetail(bosses[id]))
	}

	split := container.NewHSplit(list, container.NewVScroll(detail))
	split.Offset = 0.3
	return split
}

func (browser *Window) powersTab() fyne.CanvasObject {
	var matches []reference.Power
	results := widget.NewList(
		func() int { return len(matches) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Wrapping = fyne.TextWrapWord
			return label
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			item.(*widget.Label).SetText(PowerLine(matches[id]))
		},
	)

	search := widget.NewEntry()
	search.SetPlaceHolder("Search powers")
	search.OnChanged = func(term string) {
		matches = reference.SearchPowers(browser.catalog.Powers, term)
		results.Refresh()
	}
	return container.NewBorder(search, nil, nil, nil, results)
}

func (browser *Window) weaponsTab() fyne.CanvasObject {
	matches := reference.SearchWeapons(browser.catalog.Weapons, "")
	header := append([]string{"Weapon"}, reference.Characters...)

	table := widget.NewTableWithHeaders(
		func() (int, int) { return len(matches), len(header) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, cell fyne.CanvasObject) {
			cell.(*widget.Label).SetText(WeaponCell(matches[id.Row], id.Col))
		},
	)
	table.UpdateHeader = func(id widget.TableCellID, cell fyne.CanvasObject) {
		label := cell.(*widget.Label)
		if id.Row < 0 && id.Col >= 0 && id.Col < len(header) {
			label.SetText(header[id.Col])
			return
		}
		label.SetText(fmt.Sprint(id.Row + 1))
	}
	table.SetColumnWidth(0, 200)

	search := widget.NewEntry()
	search.SetPlaceHolder("Search weapons or status effects")
	search.OnChanged = func(term string) {
		matches = reference.SearchWeapons(browser.catalog.Weapons, term)
		table.Refresh()
	}
	return container.NewBorder(search, nil, nil, nil, table)
}

// BossDetail renders a boss as multi-line text.
func BossDetail(boss reference.Boss) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%s, %s\n", boss.Name, boss.Title)
	if boss.AltName != "" {
		fmt.Fprintf(&builder, "Also known as %s\n", boss.AltName)
	}
	if boss.Stats == nil {
		builder.WriteString("\nNo stats available.")
		return builder.String()
	}

	fmt.Fprintf(&builder, "\nHealth %d, poise %d\n", boss.Stats.Health, boss.Stats.Poise)
	if len(boss.Weaknesses) > 0 {
		fmt.Fprintf(&builder, "Weak to %s\n", strings.Join(boss.Weaknesses, ", "))
	}
	builder.WriteString("\nNegation\n")
	for _, negation := range boss.Stats.Negations {
		fmt.Fprintf(&builder, "  %-10s %4d%%\n", negation.Kind, negation.Value)
	}
	builder.WriteString("\nResistance\n")
	for _, resistance := range boss.Stats.Resistances {
		fmt.Fprintf(&builder, "  %-10s %s\n", resistance.Kind, resistance)
	}
	if len(boss.Tips) > 0 {
		builder.WriteString("\nTips\n")
		for _, tip := range boss.Tips {
			fmt.Fprintf(&builder, "  - %s\n", tip)
		}
	}
	return strings.TrimRight(builder.String(), "\n")
}

// PowerLine renders a power as "Name: effect".
func PowerLine(power reference.Power) string {
	if power.Effect == "" {
		return power.Name
	}
	return power.Name + ": " + power.Effect
}

// WeaponCell returns the table text for a column: the name with its status
// effect in column 0, then one attack power per character.
func WeaponCell(weapon reference.WeaponScaling, column int) string {
	if column == 0 {
		if weapon.Status == "" {
			return weapon.Name
		}
		return fmt.Sprintf("%s (%s)", weapon.Name, weapon.Status)
	}
	if column-1 < len(reference.Characters) {
		return fmt.Sprint(weapon.Value(reference.Characters[column-1]))
	}
	return ""
}
