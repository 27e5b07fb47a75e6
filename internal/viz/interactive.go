package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/debrislab/internal/debris"
	"github.com/san-kum/debrislab/internal/scenario"
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// sandboxEntry is the free-play mode listed above the scripted scenarios.
const sandboxEntry = "sandbox"

type model struct {
	state, cursor int
	entries       []string
	info          map[string]string
	selected      string
	params        map[string]float64
	paramNames    []string
	paramCursor   int
	editing       bool
	editBuf       string
	errMsg        string
	width, height int
	liveModel     Model
}

func NewInteractiveApp() *model {
	entries := append([]string{sandboxEntry}, scenario.Names()...)
	info := map[string]string{sandboxEntry: "free play burst box"}
	for _, name := range scenario.Names() {
		if s, err := scenario.Get(name); err == nil {
			info[name] = s.Description
		}
	}
	return &model{
		state:   stateMenu,
		entries: entries,
		info:    info,
		params: map[string]float64{
			"force": 300, "count": 20, "seed": 42,
			"gravity": 500, "drag": 0.99,
		},
		paramNames: []string{"force", "count", "seed"},
		width:      80, height: 24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	default:
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.entries[m.cursor]
		m.state, m.paramCursor = stateConfig, 0
		m.setParamsForSelection()
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			fmt.Sscanf(m.editBuf, "%f", &val)
			m.params[m.paramNames[m.paramCursor]] = val
			m.editing, m.editBuf = false, ""
		case "escape":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "escape":
		m.state, m.errMsg = stateMenu, ""
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%.2f", m.params[m.paramNames[m.paramCursor]])
	case "s":
		cmd := m.start()
		return m, cmd
	case "left", "h":
		m.params[m.paramNames[m.paramCursor]] -= paramStep(m.paramNames[m.paramCursor])
	case "right", "l":
		m.params[m.paramNames[m.paramCursor]] += paramStep(m.paramNames[m.paramCursor])
	}
	return m, nil
}

func paramStep(name string) float64 {
	switch name {
	case "force", "gravity":
		return 50
	case "count":
		return 5
	case "drag":
		return 0.01
	default:
		return 1
	}
}

func (m *model) setParamsForSelection() {
	if m.selected == sandboxEntry {
		m.paramNames = []string{"force", "count", "seed", "gravity", "drag"}
	} else {
		m.paramNames = []string{"seed", "gravity", "drag"}
	}
	for _, name := range m.paramNames {
		if _, ok := m.params[name]; !ok {
			m.params[name] = 0.0
		}
	}
}

func (m *model) start() tea.Cmd {
	env := debris.DefaultEnvironment()
	env.Gravity.Y = m.params["gravity"]
	env.AirDrag = m.params["drag"]
	seed := int64(m.params["seed"])

	if m.selected == sandboxEntry {
		m.liveModel = NewModel(env, seed, m.params["force"], int(m.params["count"]), debris.SemiRigid)
	} else {
		scn, err := scenario.Get(m.selected)
		if err == nil {
			var lm Model
			if lm, err = NewScenarioModel(scn, env, seed); err == nil {
				m.liveModel = lm
			}
		}
		if err != nil {
			m.errMsg = err.Error()
			return nil
		}
	}
	m.state, m.errMsg = stateSim, ""
	return m.liveModel.Init()
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	b.WriteString("\n\n    " + h.Render("DEBRISLAB") + "\n    " + sub.Render("debris physics sandbox") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.entries {
		desc := m.info[name]
		if len(desc) > 42 {
			desc = desc[:39] + "..."
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true).Render(fmt.Sprintf("%-12s", name)),
				lipgloss.NewStyle().Foreground(CurrentTheme.Secondary).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n",
				lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(fmt.Sprintf("  %-12s", name)),
				lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Render(desc)))
		}
	}
	b.WriteString("\n    " + KeyHint.Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	b.WriteString("\n\n    " + h.Render(strings.ToUpper(m.selected)) + "\n    " + sub.Render(m.info[m.selected]) + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.paramNames {
		val := m.params[name]
		valStr := fmt.Sprintf("%8.2f", val)
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n",
				lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true).Render(fmt.Sprintf("%-10s", name)),
				lipgloss.NewStyle().Foreground(CurrentTheme.Secondary).Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n",
				lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(fmt.Sprintf("  %-10s", name)),
				lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Render(valStr)))
		}
	}
	if m.errMsg != "" {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(CurrentTheme.Warning).Render(m.errMsg) + "\n")
	}
	b.WriteString("\n    " + KeyHint.Render("j/k select  h/l adjust  enter edit  s start  esc back") + "\n")
	return b.String()
}

func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Run()
	return err
}
