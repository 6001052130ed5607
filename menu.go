package main

import (
	"fmt"
	"strings"
)

// presetItem is a canned CR experiment configuration.
type presetItem struct {
	name   string
	desc   string
	echoed bool
	cfg    RabiConfig
}

// presetCategory groups related presets under a tab.
type presetCategory struct {
	name  string
	items []presetItem
}

// presetMenu defines the experiment preset picker.
var presetMenu = []presetCategory{
	{
		name: "Unechoed",
		items: []presetItem{
			{
				name: "Coarse sweep", desc: "128:1024:128",
				cfg: RabiConfig{Samples: parseDurations("128:1024:128"), Amp: 0.2, Sigma: 32, Risefall: 64},
			},
			{
				name: "Fine sweep", desc: "64:512:32",
				cfg: RabiConfig{Samples: parseDurations("64:512:32"), Amp: 0.1, Sigma: 16, Risefall: 32},
			},
			{
				name: "With cancellation", desc: "cancel tone on target",
				cfg: RabiConfig{
					Samples: parseDurations("128:1024:128"), Amp: 0.2, Sigma: 32, Risefall: 64,
					Cancellation: CancellationTone{Enabled: true, Amp: 0.04},
				},
			},
		},
	},
	{
		name: "Echoed",
		items: []presetItem{
			{
				name: "Coarse sweep", desc: "256:2048:256", echoed: true,
				cfg: RabiConfig{Samples: parseDurations("256:2048:256"), Amp: 0.2, Sigma: 32, Risefall: 64},
			},
			{
				name: "With cancellation", desc: "cancel tone on target", echoed: true,
				cfg: RabiConfig{
					Samples: parseDurations("256:2048:256"), Amp: 0.2, Sigma: 32, Risefall: 64,
					Cancellation: CancellationTone{Enabled: true, Amp: 0.04},
				},
			},
		},
	},
}

// renderMenu renders the floating preset-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Experiment Presets"))
	sb.WriteString("\n")

	// Category tabs, fixed width so the bar does not jump between tabs
	for i, cat := range presetMenu {
		name := padCenter(cat.name, 12)
		if i == m.menuCat {
			sb.WriteString(activeStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(presetMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	cat := presetMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-20s", item.name)))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-20s", item.name)))
		}
		sb.WriteString(dimStyle.Render(item.desc))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
