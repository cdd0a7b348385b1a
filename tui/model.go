package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zappabad/budgetsim/internal/logging"
	"github.com/zappabad/budgetsim/internal/simulation"
	"github.com/zappabad/budgetsim/tui/panels"
	"github.com/zappabad/budgetsim/tui/styles"
)

// PanelFocus represents which panel is currently focused.
type PanelFocus int

const (
	FocusParams    PanelFocus = 0
	FocusPeriods   PanelFocus = 1
	FocusArtifacts PanelFocus = 2
	FocusChart     PanelFocus = 3
)

const panelCount = 4

// Runner runs a simulation. *simulation.Simulator satisfies it.
type Runner interface {
	Run(p simulation.Params) simulation.Result
}

// Model is the main TUI application model.
type Model struct {
	cfg    Config
	runner Runner
	logger *slog.Logger

	paramsPanel    *panels.ParamsPanel
	periodsPanel   *panels.PeriodsPanel
	artifactsPanel *panels.ArtifactsPanel
	chartPanel     *panels.ChartPanel

	focusedPanel PanelFocus

	lastParams simulation.Params
	result     *simulation.Result
	running    bool

	width  int
	height int

	statusMsg string
	ready     bool
}

// NewModel creates a new TUI model. A nil logger discards.
func NewModel(cfg Config, runner Runner, logger *slog.Logger) *Model {
	if logger == nil {
		logger = logging.Discard()
	}
	m := &Model{
		cfg:            cfg,
		runner:         runner,
		logger:         logger,
		paramsPanel:    panels.NewParamsPanel(cfg.Params),
		periodsPanel:   panels.NewPeriodsPanel(),
		artifactsPanel: panels.NewArtifactsPanel(),
		chartPanel:     panels.NewChartPanel(),
		focusedPanel:   FocusParams,
		lastParams:     cfg.Params,
	}
	m.applyFocus()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.paramsPanel.Init(),
		m.periodsPanel.Init(),
		m.artifactsPanel.Init(),
		m.chartPanel.Init(),
	}
	if m.cfg.RunOnStart {
		m.running = true
		cmds = append(cmds, m.runSimulation(m.cfg.Params))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// q is a normal character while a form field is being edited.
			if !m.paramsEditing() {
				return m, tea.Quit
			}
		case "r":
			if !m.paramsEditing() && !m.running {
				m.running = true
				cmds = append(cmds, m.runSimulation(m.lastParams))
			}
		case "tab":
			m.cycleFocus()
			return m, nil
		case "shift+tab":
			m.focusedPanel--
			if m.focusedPanel < 0 {
				m.focusedPanel = panelCount - 1
			}
			m.applyFocus()
			return m, nil
		case "f1":
			m.setFocus(FocusParams)
			return m, nil
		case "f2":
			m.setFocus(FocusPeriods)
			return m, nil
		case "f3":
			m.setFocus(FocusArtifacts)
			return m, nil
		case "f4":
			m.setFocus(FocusChart)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case panels.ParamsSubmitMsg:
		if !m.running {
			m.running = true
			m.statusMsg = "Running simulation..."
			cmds = append(cmds, m.runSimulation(msg.Params))
		}

	case panels.PeriodSelectedMsg:
		m.artifactsPanel.SetPeriod(msg.Summary)

	case simulationDoneMsg:
		m.handleResult(msg)
	}

	m.updateFocusedPanel(msg, &cmds)

	return m, tea.Batch(cmds...)
}

func (m *Model) updateFocusedPanel(msg tea.Msg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd

	switch m.focusedPanel {
	case FocusParams:
		m.paramsPanel, cmd = m.paramsPanel.Update(msg)
	case FocusPeriods:
		m.periodsPanel, cmd = m.periodsPanel.Update(msg)
	case FocusArtifacts:
		m.artifactsPanel, cmd = m.artifactsPanel.Update(msg)
	case FocusChart:
		m.chartPanel, cmd = m.chartPanel.Update(msg)
	}

	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) handleResult(msg simulationDoneMsg) {
	m.running = false
	m.lastParams = msg.params
	m.result = &msg.result

	m.periodsPanel.SetResult(msg.result)
	m.chartPanel.SetResult(msg.result)
	if first, ok := m.periodsPanel.Selected(); ok {
		m.artifactsPanel.SetPeriod(first)
	} else {
		m.artifactsPanel.Clear()
	}

	tot := msg.result.Totals()
	m.statusMsg = fmt.Sprintf("%d/%d periods, final budget %s ETH",
		tot.Periods, msg.params.MaxPeriods, styles.FormatAmount(tot.FinalBudget))
	if msg.result.StoppedEarly() {
		m.statusMsg += " (budget exhausted)"
	}

	m.logger.Info("simulation displayed",
		"run_id", msg.result.RunID,
		"periods", tot.Periods,
		"stop_reason", msg.result.StopReason.String(),
	)
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	m.applyFocus()

	// Layout:
	// ┌──────────────┬─────────────────────────────┐
	// │  Parameters  │           Chart             │
	// ├──────────────┼──────────────┬──────────────┤
	// │              │   Periods    │  Artifacts   │
	// └──────────────┴──────────────┴──────────────┘

	leftWidth := m.width / 3
	rightWidth := m.width - leftWidth
	bodyHeight := m.height - 1
	topHeight := bodyHeight / 2
	bottomHeight := bodyHeight - topHeight

	m.paramsPanel.SetSize(leftWidth, bodyHeight)
	m.chartPanel.SetSize(rightWidth, topHeight)
	m.periodsPanel.SetSize(rightWidth/2, bottomHeight)
	m.artifactsPanel.SetSize(rightWidth-rightWidth/2, bottomHeight)

	bottomRight := lipgloss.JoinHorizontal(lipgloss.Top,
		m.periodsPanel.View(),
		m.artifactsPanel.View(),
	)
	right := lipgloss.JoinVertical(lipgloss.Left, m.chartPanel.View(), bottomRight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.paramsPanel.View(), right)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m *Model) renderStatusBar() string {
	help := []string{
		styles.StatusBarKeyStyle.Render("F1-F4") + styles.StatusBarDescStyle.Render(" panels"),
		styles.StatusBarKeyStyle.Render("Tab") + styles.StatusBarDescStyle.Render(" cycle"),
		styles.StatusBarKeyStyle.Render("↑↓/Enter") + styles.StatusBarDescStyle.Render(" navigate"),
		styles.StatusBarKeyStyle.Render("r") + styles.StatusBarDescStyle.Render(" rerun"),
		styles.StatusBarKeyStyle.Render("q") + styles.StatusBarDescStyle.Render(" quit"),
	}

	helpStr := lipgloss.JoinHorizontal(lipgloss.Center,
		help[0], " │ ", help[1], " │ ", help[2], " │ ", help[3], " │ ", help[4])

	status := ""
	if m.statusMsg != "" {
		status = " │ " + m.statusMsg
	}

	return styles.StatusBarStyle.Width(m.width).Render(helpStr + status)
}

func (m *Model) paramsEditing() bool {
	return m.focusedPanel == FocusParams && m.paramsPanel.Editing()
}

func (m *Model) applyFocus() {
	m.paramsPanel.SetFocus(m.focusedPanel == FocusParams)
	m.periodsPanel.SetFocus(m.focusedPanel == FocusPeriods)
	m.artifactsPanel.SetFocus(m.focusedPanel == FocusArtifacts)
	m.chartPanel.SetFocus(m.focusedPanel == FocusChart)
}

func (m *Model) setFocus(panel PanelFocus) {
	m.focusedPanel = panel
	m.applyFocus()
}

func (m *Model) cycleFocus() {
	m.focusedPanel = (m.focusedPanel + 1) % panelCount
	m.applyFocus()
}

func (m *Model) runSimulation(p simulation.Params) tea.Cmd {
	runner := m.runner
	return func() tea.Msg {
		return simulationDoneMsg{params: p, result: runner.Run(p)}
	}
}

// Result returns the most recent result, or nil before the first run.
func (m *Model) Result() *simulation.Result {
	return m.result
}

// Focused returns the focused panel.
func (m *Model) Focused() PanelFocus {
	return m.focusedPanel
}

// Status returns the status bar message.
func (m *Model) Status() string {
	return m.statusMsg
}

// simulationDoneMsg carries a finished run back to the update loop.
type simulationDoneMsg struct {
	params simulation.Params
	result simulation.Result
}

// Run starts the terminal UI and blocks until it exits or ctx is done.
func Run(ctx context.Context, cfg Config, runner Runner, logger *slog.Logger) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(NewModel(cfg, runner, logger), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
