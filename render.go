package main

import (
	"fmt"
	"strings"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// ──────────────────────────── Sparklines ────────────────────────────

// columnSample summarizes the pulse activity within one sparkline column.
type columnSample struct {
	mag      float64 // peak envelope magnitude in the column
	negative bool    // peak sample had negative real part
	acquire  bool    // an acquisition window covers the column
	occupied bool    // any instruction (incl. delay) covers the column
}

// sampleColumns downsamples one channel of a schedule into cols columns
// spanning [0, total) samples.
func sampleColumns(s *Schedule, ch Channel, total, cols int) []columnSample {
	out := make([]columnSample, cols)
	if total <= 0 {
		return out
	}
	insts := s.Instructions()
	for col := range out {
		t0 := col * total / cols
		t1 := (col + 1) * total / cols
		if t1 <= t0 {
			t1 = t0 + 1
		}
		for _, in := range insts {
			if in.Channel != ch || in.Stop() <= t0 || in.Start >= t1 {
				continue
			}
			out[col].occupied = true
			if _, ok := in.Env.(Acquire); ok {
				out[col].acquire = true
				continue
			}
			for t := max(t0, in.Start); t < min(t1, in.Stop()); t++ {
				a := in.Env.At(t - in.Start)
				if m := absAmp(a); m > out[col].mag {
					out[col].mag = m
					out[col].negative = real(a) < 0
				}
			}
		}
	}
	return out
}

// sparkline renders one channel wire: envelope magnitude as block glyphs,
// acquisition windows hatched, idle delay regions dotted.
func sparkline(s *Schedule, ch Channel, total, cols int, maxMag float64) string {
	samples := sampleColumns(s, ch, total, cols)
	var sb strings.Builder
	for _, cs := range samples {
		switch {
		case cs.acquire && cs.mag == 0:
			sb.WriteString(acquireStyle.Render("▒"))
		case cs.mag > 0:
			idx := 0
			if maxMag > 0 {
				idx = int(cs.mag / maxMag * float64(len(ampGlyphs)-1))
			}
			idx = min(max(idx, 0), len(ampGlyphs)-1)
			glyph := string(ampGlyphs[idx])
			if cs.negative {
				sb.WriteString(pulseNegStyle.Render(glyph))
			} else {
				sb.WriteString(pulsePosStyle.Render(glyph))
			}
		case cs.occupied:
			sb.WriteString(dimStyle.Render("·"))
		default:
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

// peakMagnitude returns the largest envelope magnitude in the schedule,
// used to normalize the glyph ramp across channels.
func peakMagnitude(s *Schedule) float64 {
	peak := 0.0
	for _, in := range s.Instructions() {
		if !isPulse(in.Env) {
			continue
		}
		for t := 0; t < in.Env.Dur(); t++ {
			if m := absAmp(in.Env.At(t)); m > peak {
				peak = m
			}
		}
	}
	return peak
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderTimelinePanel renders the pulse timeline of the selected schedule.
func (m Model) renderTimelinePanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Pulse Timeline"))
	sb.WriteString("\n\n")

	if len(m.experiments) == 0 {
		sb.WriteString(dimStyle.Render("No schedules - fix the backend or parameters."))
		if m.statusMsg != "" {
			sb.WriteString("\n\n  " + activeStyle.Render(m.statusMsg))
		}
		return timelineStyle.Width(width).Height(height).Render(sb.String())
	}

	sched := m.experiments[m.selected]
	total := sched.Duration()
	physNs := float64(total) * m.backend.DT

	fmt.Fprintf(&sb, "  %s  %s\n",
		activeStyle.Render(fmt.Sprintf("sched %s", sched.Name)),
		dimStyle.Render(fmt.Sprintf("(%d/%d)  %d samples  %.1f ns", m.selected+1, len(m.experiments), total, physNs)))

	cols := max(width-chanLabelW-6, 16)

	// Time axis header in samples
	axis := strings.Repeat(" ", chanLabelW)
	axis += dimStyle.Render(fmt.Sprintf("0%s%d", strings.Repeat(" ", max(cols-len(fmt.Sprint(total))-1, 1)), total))
	sb.WriteString(axis + "\n")

	peak := peakMagnitude(sched)
	channels := sched.Channels()
	visible := max(height-8, 1)
	start := min(m.chanOffset, max(len(channels)-visible, 0))

	for i := start; i < len(channels) && i < start+visible; i++ {
		ch := channels[i]
		label := labelStyle(ch.Kind).Render(fmt.Sprintf("%-5s", ch.String())) + "──"
		sb.WriteString(label + sparkline(sched, ch, total, cols, peak) + "\n")
	}
	if len(channels) > visible {
		fmt.Fprintf(&sb, "  %s\n", dimStyle.Render(fmt.Sprintf("↑↓ channels %d-%d of %d", start+1, min(start+visible, len(channels)), len(channels))))
	}

	// Status line
	sb.WriteString("\n")
	seq := "CR1 (unechoed)"
	if m.echoed {
		seq = "CR2 (echoed)"
	}
	cancel := "off"
	if m.cfg.Cancellation.Enabled {
		cancel = formatAmp(m.cfg.Cancellation.Amp)
	}
	fmt.Fprintf(&sb, "  %s  q%d→q%d  amp=%s  sigma=%g  risefall=%d  cancel=%s",
		activeStyle.Render(seq), m.cQubit, m.tQubit,
		formatAmp(m.cfg.Amp), m.cfg.Sigma, m.cfg.Risefall, cancel)
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "\n  %s", activeStyle.Render(m.statusMsg))
	}

	return timelineStyle.Width(width).Height(height).Render(sb.String())
}

// renderBackendPanel renders the live backend YAML editor panel.
func (m Model) renderBackendPanel(width, height int) string {
	var sb strings.Builder

	title := "Backend YAML"
	if m.focus == focusBackend {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.backendEditor.View())

	return backendStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeStyle.Render("Navigate: "))
	sb.WriteString("←→/hl Schedule  ↑↓/jk Channels")
	sb.WriteString("    ")
	sb.WriteString(activeStyle.Render("a"))
	sb.WriteString(" Presets  ")
	sb.WriteString(activeStyle.Render("⏎"))
	sb.WriteString(" Edit params\n")

	sb.WriteString(activeStyle.Render("Actions:  "))
	sb.WriteString("e Echo on/off  x Cancellation  Tab Backend YAML  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// renderParamInput renders the value input overlay.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Enter " + m.editField.label()))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Value: %s_", m.paramInput))
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Examples: " + m.editField.example()))
	return menuBorderStyle.Render(sb.String())
}

// renderEditMenu renders the parameter picker overlay.
func (m Model) renderEditMenu() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Edit Parameters"))
	sb.WriteString("\n\n")
	for i, f := range editFields {
		line := fmt.Sprintf("%-14s %s", f.label(), m.fieldValue(f))
		if i == m.editMenuIdx {
			sb.WriteString(menuSelectedStyle.Render("▸ " + line))
		} else {
			sb.WriteString("  " + menuNormalStyle.Render(line))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("↑↓ Select  ⏎ Ok  Esc ✕"))
	return menuBorderStyle.Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at position (x, y).
// It handles ANSI escape sequences by tracking visible column positions.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces visible columns starting at position x in bgLine with overlay content.
// It properly handles ANSI escape sequences in the background line.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix strings.Builder
	var suffix strings.Builder

	col := 0
	i := 0
	inEsc := false

	// Collect prefix: everything up to visible column x
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			inEsc = true
			for i < len(runes) {
				prefix.WriteRune(runes[i])
				if inEsc && runes[i] != '\x1b' && runes[i] != '[' && ((runes[i] >= 'A' && runes[i] <= 'Z') || (runes[i] >= 'a' && runes[i] <= 'z')) {
					inEsc = false
					i++
					break
				}
				i++
			}
		} else {
			prefix.WriteRune(runes[i])
			col++
			i++
		}
	}

	// Pad prefix if bg line is shorter than x
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip over ovWidth visible columns in the background
	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				i++
				if i > 0 && runes[i-1] != '\x1b' && runes[i-1] != '[' && ((runes[i-1] >= 'A' && runes[i-1] <= 'Z') || (runes[i-1] >= 'a' && runes[i-1] <= 'z')) {
					break
				}
			}
		} else {
			skipped++
			i++
		}
	}

	// Collect suffix: rest of the background line
	for i < len(runes) {
		suffix.WriteRune(runes[i])
		i++
	}

	return prefix.String() + overlay + suffix.String()
}

// visibleLen returns the number of visible (non-ANSI-escape) characters in a string.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
