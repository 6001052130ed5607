package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusTimeline focus = iota
	focusBackend
	focusMenu
	focusEditMenu
	focusInputValue
)

// fieldID identifies an editable experiment parameter.
type fieldID int

const (
	fieldDurations fieldID = iota
	fieldAmp
	fieldSigma
	fieldRisefall
	fieldCancelAmp
	fieldControl
	fieldTarget
)

// editFields is the fixed order of the parameter edit overlay.
var editFields = []fieldID{
	fieldDurations, fieldAmp, fieldSigma, fieldRisefall,
	fieldCancelAmp, fieldControl, fieldTarget,
}

func (f fieldID) label() string {
	switch f {
	case fieldDurations:
		return "Durations"
	case fieldAmp:
		return "CR amp"
	case fieldSigma:
		return "Sigma"
	case fieldRisefall:
		return "Risefall"
	case fieldCancelAmp:
		return "Cancel amp"
	case fieldControl:
		return "Control qubit"
	case fieldTarget:
		return "Target qubit"
	}
	return "?"
}

func (f fieldID) example() string {
	switch f {
	case fieldDurations:
		return "128,256,512 or 64:512:64"
	case fieldAmp, fieldCancelAmp:
		return "0.2, -0.1, 0.2+0.05i"
	case fieldSigma:
		return "32"
	case fieldRisefall:
		return "64"
	}
	return "0"
}

// Model represents the TUI application state.
type Model struct {
	backend *Backend
	cfg     RabiConfig
	cQubit  int
	tQubit  int
	echoed  bool
	outPath string

	times       []float64
	rabi        []*Schedule
	experiments []*Schedule

	selected   int
	chanOffset int
	width      int
	height     int
	focus      focus
	statusMsg  string

	backendEditor textarea.Model
	lastYAML      string

	// Menu state
	menuCat  int
	menuItem int

	// Parameter edit state
	editMenuIdx int
	editField   fieldID
	paramInput  string

	log zerolog.Logger
}

func initialModel(b *Backend, cQubit, tQubit int, cfg RabiConfig, echoed bool, outPath string, log zerolog.Logger) Model {
	ta := textarea.New()
	ta.Placeholder = "Backend YAML..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		backend:       b,
		cfg:           cfg,
		cQubit:        cQubit,
		tQubit:        tQubit,
		echoed:        echoed,
		outPath:       outPath,
		backendEditor: ta,
		focus:         focusTimeline,
		log:           log,
	}
	m.syncBackendYAML()
	m.rebuild()
	return m
}

// syncBackendYAML refreshes the editor panel from the live backend.
func (m *Model) syncBackendYAML() {
	doc := m.backend.ToYAML()
	m.backendEditor.SetValue(doc)
	m.lastYAML = doc
}

// rebuild regenerates the Rabi sweep and tomography schedules from the
// current backend and parameters.
func (m *Model) rebuild() {
	cmdDef := m.backend.CmdDef()

	build := CR1RabiSchedules
	if m.echoed {
		build = CR2RabiSchedules
	}
	times, rabi, err := build(m.cQubit, m.tQubit, m.backend, m.cfg, cmdDef)
	if err != nil {
		m.times, m.rabi, m.experiments = nil, nil, nil
		m.statusMsg = err.Error()
		m.log.Warn().Err(err).Int("control", m.cQubit).Int("target", m.tQubit).Msg("rabi build failed")
		return
	}

	experiments, err := CRTomographySchedules(m.cQubit, m.tQubit, m.backend, rabi, cmdDef)
	if err != nil {
		m.times, m.rabi, m.experiments = nil, nil, nil
		m.statusMsg = err.Error()
		m.log.Warn().Err(err).Msg("tomography build failed")
		return
	}

	m.times, m.rabi, m.experiments = times, rabi, experiments
	m.selected = min(m.selected, len(experiments)-1)
	m.statusMsg = ""
	m.log.Info().
		Int("sweep_points", len(rabi)).
		Int("schedules", len(experiments)).
		Bool("echoed", m.echoed).
		Msg("experiments rebuilt")
}

// parseBackendInput re-parses the YAML editor contents when they change.
func (m *Model) parseBackendInput() {
	doc := m.backendEditor.Value()
	if doc == m.lastYAML {
		return
	}
	m.lastYAML = doc
	b, err := ParseBackend([]byte(doc))
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.backend = b
	m.rebuild()
}

// fieldValue formats the current value of an editable field.
func (m Model) fieldValue(f fieldID) string {
	switch f {
	case fieldDurations:
		return formatDurations(m.cfg.Samples)
	case fieldAmp:
		return formatAmp(m.cfg.Amp)
	case fieldSigma:
		// Sigma accepts pi expressions on input, so echo them back the same way.
		return formatParam(m.cfg.Sigma)
	case fieldRisefall:
		return strconv.Itoa(m.cfg.Risefall)
	case fieldCancelAmp:
		if !m.cfg.Cancellation.Enabled {
			return "off"
		}
		return formatAmp(m.cfg.Cancellation.Amp)
	case fieldControl:
		return fmt.Sprintf("q%d", m.cQubit)
	case fieldTarget:
		return fmt.Sprintf("q%d", m.tQubit)
	}
	return ""
}

// applyField parses the input buffer into the selected field. Returns false
// (with a status message) when the input does not parse.
func (m *Model) applyField(f fieldID, input string) bool {
	switch f {
	case fieldDurations:
		samples := parseDurations(input)
		if samples == nil {
			m.statusMsg = "Invalid durations - use 128,256,512 or 64:512:64"
			return false
		}
		m.cfg.Samples = samples
	case fieldAmp:
		amp, ok := parseComplexAmp(input)
		if !ok {
			m.statusMsg = "Invalid amplitude - use numbers, pi expressions or complex literals"
			return false
		}
		m.cfg.Amp = amp
	case fieldSigma:
		val, ok := parseParamExpr(input)
		if !ok {
			m.statusMsg = "Invalid sigma"
			return false
		}
		m.cfg.Sigma = val
	case fieldRisefall:
		n, err := strconv.Atoi(input)
		if err != nil {
			m.statusMsg = "Invalid risefall"
			return false
		}
		m.cfg.Risefall = n
	case fieldCancelAmp:
		if input == "" || input == "off" {
			m.cfg.Cancellation = CancellationTone{}
			return true
		}
		amp, ok := parseComplexAmp(input)
		if !ok {
			m.statusMsg = "Invalid amplitude - use numbers, pi expressions or complex literals"
			return false
		}
		m.cfg.Cancellation = CancellationTone{Enabled: true, Amp: amp}
	case fieldControl, fieldTarget:
		n, err := strconv.Atoi(input)
		if err != nil || n < 0 || n >= m.backend.NumQubits {
			m.statusMsg = fmt.Sprintf("Qubit index must be 0-%d", m.backend.NumQubits-1)
			return false
		}
		if f == fieldControl {
			m.cQubit = n
		} else {
			m.tQubit = n
		}
	}
	return true
}

// saveExport writes the current experiment set to the output path.
func (m *Model) saveExport() {
	if len(m.experiments) == 0 {
		m.statusMsg = "Nothing to save"
		return
	}
	set := buildExperimentSet(m.backend, m.cQubit, m.tQubit, m.echoed, m.times, m.experiments)
	if err := writeExperimentSet(m.outPath, set); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		m.log.Error().Err(err).Str("path", m.outPath).Msg("export failed")
		return
	}
	m.statusMsg = "Saved " + m.outPath
	m.log.Info().Str("path", m.outPath).Int("schedules", len(m.experiments)).Msg("export written")
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		yamlW := max(msg.Width/3-6, 20)
		m.backendEditor.SetWidth(yamlW)
		ctrlH := 6
		panelH := msg.Height - ctrlH - 4
		m.backendEditor.SetHeight(max(panelH-4, 4))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusTimeline:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusBackend
				m.backendEditor.Focus()
			case "left", "h":
				if m.selected > 0 {
					m.selected--
				}
			case "right", "l":
				if m.selected < len(m.experiments)-1 {
					m.selected++
				}
			case "up", "k":
				if m.chanOffset > 0 {
					m.chanOffset--
				}
			case "down", "j":
				m.chanOffset++
			case "e":
				m.echoed = !m.echoed
				m.rebuild()
			case "x":
				if m.cfg.Cancellation.Enabled {
					m.cfg.Cancellation = CancellationTone{}
				} else {
					m.cfg.Cancellation = CancellationTone{Enabled: true, Amp: 0.04}
				}
				m.rebuild()
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "enter":
				m.focus = focusEditMenu
				m.editMenuIdx = 0
			case "ctrl+s", "s":
				m.saveExport()
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusTimeline
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(presetMenu[m.menuCat].items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(presetMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := presetMenu[m.menuCat].items[m.menuItem]
				m.cfg = item.cfg
				m.echoed = item.echoed
				m.selected = 0
				m.focus = focusTimeline
				m.rebuild()
			}

		case focusEditMenu:
			switch key {
			case "esc":
				m.focus = focusTimeline
			case "up", "k":
				if m.editMenuIdx > 0 {
					m.editMenuIdx--
				}
			case "down", "j":
				if m.editMenuIdx < len(editFields)-1 {
					m.editMenuIdx++
				}
			case "enter":
				m.editField = editFields[m.editMenuIdx]
				m.paramInput = ""
				m.focus = focusInputValue
			}

		case focusInputValue:
			switch key {
			case "esc":
				m.paramInput = ""
				m.focus = focusEditMenu
			case "backspace":
				if len(m.paramInput) > 0 {
					m.paramInput = m.paramInput[:len(m.paramInput)-1]
				}
			case "enter":
				if m.applyField(m.editField, m.paramInput) {
					m.paramInput = ""
					m.focus = focusEditMenu
					m.rebuild()
				}
			default:
				if len(key) == 1 {
					ch := key[0]
					if (ch >= '0' && ch <= '9') || ch == '.' || ch == ',' || ch == ':' || ch == '-' || ch == '+' ||
						ch == 'e' || ch == 'E' || ch == 'i' || ch == 'p' || ch == '*' || ch == '/' || ch == 'o' || ch == 'f' {
						m.paramInput += key
					}
				}
			}

		case focusBackend:
			switch key {
			case "tab":
				m.focus = focusTimeline
				m.backendEditor.Blur()
			default:
				var cmd tea.Cmd
				m.backendEditor, cmd = m.backendEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseBackendInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	yamlWidth := m.width / 3
	timelineWidth := m.width - yamlWidth - 4
	controlsHeight := 6
	panelHeight := max(m.height-controlsHeight-2, 6)

	timelinePanel := m.renderTimelinePanel(timelineWidth, panelHeight)
	backendPanel := m.renderBackendPanel(yamlWidth, panelHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, timelinePanel, backendPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}
	if m.focus == focusEditMenu {
		frame = overlayAt(frame, m.renderEditMenu(), 2, 2)
	}
	if m.focus == focusInputValue {
		frame = overlayAt(frame, m.renderParamInput(), 2, 2)
	}

	return frame
}
